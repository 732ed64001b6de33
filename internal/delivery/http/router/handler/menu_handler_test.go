package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	httpmiddleware "bistro/internal/delivery/http/middleware"
	"bistro/internal/delivery/http/validator"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// stubMenuUsecase records the inputs it is called with.
type stubMenuUsecase struct {
	createCalls []*usecase.SaveMenuItemInput
	updateCalls []*usecase.SaveMenuItemInput
}

func (s *stubMenuUsecase) ListMenuItems(context.Context, *usecase.ListMenuInput) (*usecase.ListMenuOutput, error) {
	return &usecase.ListMenuOutput{}, nil
}

func (s *stubMenuUsecase) GetMenuItem(context.Context, uuid.UUID) (*usecase.MenuItemView, error) {
	return nil, nil
}

func (s *stubMenuUsecase) CreateMenuItem(_ context.Context, input *usecase.SaveMenuItemInput) (*usecase.MenuItemView, error) {
	s.createCalls = append(s.createCalls, input)

	return &usecase.MenuItemView{}, nil
}

func (s *stubMenuUsecase) UpdateMenuItem(_ context.Context, _ uuid.UUID, input *usecase.SaveMenuItemInput) (*usecase.MenuItemView, error) {
	s.updateCalls = append(s.updateCalls, input)

	return &usecase.MenuItemView{}, nil
}

func (s *stubMenuUsecase) DeleteMenuItem(context.Context, uuid.UUID) error { return nil }

func newMenuTestServer(uc usecase.MenuUsecase) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = httpmiddleware.NewErrorMiddleware(logger).HandleHTTPError

	h := NewMenuHandler(uc, logger)
	e.POST("/menu", h.Create)
	e.PUT("/menu/:id", h.Update)

	return e
}

func TestMenuHandler_CreateMalformedBody(t *testing.T) {
	uc := &stubMenuUsecase{}
	e := newMenuTestServer(uc)

	rec := postJSON(e, "/menu", `{"name": "Pad Thai", "price": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
	assert.Empty(t, uc.createCalls, "a rejected payload must never reach the usecase")
}

func TestMenuHandler_CreateMissingRequiredFields(t *testing.T) {
	uc := &stubMenuUsecase{}
	e := newMenuTestServer(uc)

	rec := postJSON(e, "/menu", `{"description": "no name, no category, no price"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
	assert.Empty(t, uc.createCalls)
}

func TestMenuHandler_CreateValidPayload(t *testing.T) {
	uc := &stubMenuUsecase{}
	e := newMenuTestServer(uc)

	rec := postJSON(e, "/menu", `{"name":"Pad Thai","category":"mains","price":9.5}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	if assert.Len(t, uc.createCalls, 1) {
		assert.Equal(t, "Pad Thai", uc.createCalls[0].Name)
		assert.InDelta(t, 9.5, uc.createCalls[0].Price, 0.001)
	}
}

func TestMenuHandler_UpdateMalformedBody(t *testing.T) {
	uc := &stubMenuUsecase{}
	e := newMenuTestServer(uc)

	rec := putJSON(e, "/menu/"+uuid.NewString(), `not json at all`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, uc.updateCalls)
}
