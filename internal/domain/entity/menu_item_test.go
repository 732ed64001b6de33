package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptrFloat(v float64) *float64 { return &v }

func ptrTime(v time.Time) *time.Time { return &v }

func TestMenuItem_DiscountActive(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		item MenuItem
		want bool
	}{
		{
			name: "no discount price",
			item: MenuItem{Price: 100},
			want: false,
		},
		{
			name: "inside window",
			item: MenuItem{
				Price:           100,
				DiscountPrice:   ptrFloat(80),
				DiscountStartAt: ptrTime(now.Add(-time.Hour)),
				DiscountEndAt:   ptrTime(now.Add(time.Hour)),
			},
			want: true,
		},
		{
			name: "before window opens",
			item: MenuItem{
				Price:           100,
				DiscountPrice:   ptrFloat(80),
				DiscountStartAt: ptrTime(now.Add(time.Hour)),
			},
			want: false,
		},
		{
			name: "after window closes",
			item: MenuItem{
				Price:         100,
				DiscountPrice: ptrFloat(80),
				DiscountEndAt: ptrTime(now.Add(-time.Minute)),
			},
			want: false,
		},
		{
			name: "open-ended window",
			item: MenuItem{
				Price:         100,
				DiscountPrice: ptrFloat(80),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.DiscountActive(now))
		})
	}
}

func TestMenuItem_FinalPrice(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)

	discounted := MenuItem{
		Price:           120,
		DiscountPrice:   ptrFloat(90),
		DiscountStartAt: ptrTime(now.Add(-time.Hour)),
		DiscountEndAt:   ptrTime(now.Add(time.Hour)),
	}
	assert.Equal(t, 90.0, discounted.FinalPrice(now))

	expired := MenuItem{
		Price:         120,
		DiscountPrice: ptrFloat(90),
		DiscountEndAt: ptrTime(now.Add(-time.Hour)),
	}
	assert.Equal(t, 120.0, expired.FinalPrice(now))
}

func TestMenuItem_Validate(t *testing.T) {
	now := time.Now()

	tooHigh := MenuItem{Price: 50, DiscountPrice: ptrFloat(60)}
	assert.ErrorIs(t, tooHigh.Validate(), ErrDiscountAbovePrice)

	inverted := MenuItem{
		Price:           50,
		DiscountPrice:   ptrFloat(40),
		DiscountStartAt: ptrTime(now.Add(time.Hour)),
		DiscountEndAt:   ptrTime(now),
	}
	assert.ErrorIs(t, inverted.Validate(), ErrDiscountWindowInverted)

	ok := MenuItem{Price: 50, DiscountPrice: ptrFloat(40)}
	assert.NoError(t, ok.Validate())
}
