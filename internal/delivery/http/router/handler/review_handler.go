package handler

import (
	"log/slog"
	"net/http"

	"bistro/internal/delivery/http/response"
	"bistro/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SubmitReviewRequest is the payload for rating a dish.
type SubmitReviewRequest struct {
	Rating  float64  `json:"rating" validate:"min=0,max=5"`
	Comment string   `json:"comment"`
	Images  []string `json:"images"`
}

// ReviewHandler holds dependencies for review handlers.
type ReviewHandler struct {
	uc     usecase.ReviewUsecase
	logger *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{uc: uc, logger: logger}
}

// Submit creates or replaces the caller's review of a dish.
func (h *ReviewHandler) Submit(c echo.Context) error {
	menuItemID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var input SubmitReviewRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review payload")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.SubmitReview(c.Request().Context(), &usecase.SubmitReviewInput{
		MenuItemID: menuItemID,
		UserID:     userID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		Images:     input.Images,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"review":  output.Review,
		"summary": output.Summary,
	}, "Review submitted successfully")
}

// List returns a page of reviews for a dish, newest first.
func (h *ReviewHandler) List(c echo.Context) error {
	menuItemID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var paging struct {
		Page  int `query:"page"`
		Limit int `query:"limit"`
	}
	if err := c.Bind(&paging); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review query")
	}

	output, err := h.uc.ListReviews(c.Request().Context(), menuItemID, paging.Page, paging.Limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"reviews": output.Reviews,
		"total":   output.Total,
		"page":    output.Page,
		"limit":   output.Limit,
	}, "Reviews retrieved successfully")
}

// Delete removes the caller's review of a dish.
func (h *ReviewHandler) Delete(c echo.Context) error {
	menuItemID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.uc.DeleteReview(c.Request().Context(), menuItemID, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"summary": summary}, "Review deleted successfully")
}
