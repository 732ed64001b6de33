// Command seed wipes the menu catalogue and loads a demo data set, including
// a happy-hour discount window for today.
package main

import (
	"log/slog"
	"os"
	"time"

	"bistro/config"
	"bistro/internal/domain/entity"
	"bistro/internal/infra/persistence/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.New()
	if err != nil {
		logger.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", slog.Any("error", err))
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.SessionModel{},
		&model.MenuItemModel{},
		&model.ReviewModel{},
		&model.PreferenceModel{},
	); err != nil {
		logger.Error("Failed to migrate schema", slog.Any("error", err))
		os.Exit(1)
	}

	if err := seedMenu(db); err != nil {
		logger.Error("Failed to seed menu items", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Menu catalogue seeded")
}

func seedMenu(db *gorm.DB) error {
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.MenuItemModel{}).Error; err != nil {
		return err
	}

	// Happy hour runs 14:00 to 17:00 local time today.
	now := time.Now()
	promoStart := time.Date(now.Year(), now.Month(), now.Day(), 14, 0, 0, 0, now.Location())
	promoEnd := time.Date(now.Year(), now.Month(), now.Day(), 17, 0, 0, 0, now.Location())
	promoPrice := 6.5

	items := []*model.MenuItemModel{
		{
			Name:            "Pad Thai",
			Description:     "Stir-fried rice noodles with tamarind, peanuts and lime",
			Category:        "mains",
			Tags:            datatypes.NewJSONSlice([]string{"noodles", "thai"}),
			Type:            "non-vegetarian",
			IsAvailable:     true,
			PreparationTime: "15 min",
			Portion:         "1 plate",
			Ingredients:     datatypes.NewJSONSlice([]string{"rice noodles", "egg", "peanuts", "tamarind"}),
			NutritionalInformation: datatypes.NewJSONSlice([]entity.Nutrient{
				{Name: "calories", Value: 620, Unit: "kcal"},
				{Name: "protein", Value: 21, Unit: "g"},
			}),
			Price:           9.5,
			DiscountPrice:   &promoPrice,
			DiscountStartAt: &promoStart,
			DiscountEndAt:   &promoEnd,
		},
		{
			Name:            "Green Curry",
			Description:     "Coconut green curry with bamboo shoots and basil",
			Category:        "mains",
			Tags:            datatypes.NewJSONSlice([]string{"curry", "spicy"}),
			Type:            "non-vegetarian",
			IsAvailable:     true,
			PreparationTime: "20 min",
			Portion:         "1 bowl",
			Ingredients:     datatypes.NewJSONSlice([]string{"coconut milk", "green curry paste", "chicken"}),
			Price:           11,
		},
		{
			Name:            "Mango Sticky Rice",
			Description:     "Sweet sticky rice with fresh mango and coconut cream",
			Category:        "desserts",
			Tags:            datatypes.NewJSONSlice([]string{"sweet", "seasonal"}),
			Type:            "vegetarian",
			IsAvailable:     true,
			PreparationTime: "10 min",
			Portion:         "1 plate",
			Ingredients:     datatypes.NewJSONSlice([]string{"sticky rice", "mango", "coconut cream"}),
			Price:           6,
		},
		{
			Name:        "Thai Iced Tea",
			Description: "Strong black tea over ice with condensed milk",
			Category:    "drinks",
			Tags:        datatypes.NewJSONSlice([]string{"cold", "classic"}),
			Type:        "vegetarian",
			IsAvailable: false,
			Portion:     "450 ml",
			Price:       3.5,
		},
	}

	return db.Create(&items).Error
}
