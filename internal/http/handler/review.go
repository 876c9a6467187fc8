package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"cardsapi/internal/service"
)

type reviewRequest struct {
	Phone string `json:"phone"`
	Text  string `json:"text"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// CreateReview handles POST /reviews. Missing fields are stored as empty strings.
//
// @Summary Add a review
// @Tags reviews
// @Accept json
// @Produce json
// @Param body body reviewRequest true "review"
// @Success 200 {object} successResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /reviews [post]
func CreateReview(svc service.ReviewService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req reviewRequest
		if err := decodeOptionalJSON(c, &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}

		if _, err := svc.Create(c.UserContext(), service.CreateReviewInput{
			Phone: req.Phone,
			Text:  req.Text,
		}); err != nil {
			return internalError(c, log, "create review", err)
		}
		return c.JSON(successResponse{Success: true})
	}
}

// ListReviews handles GET /reviews.
//
// @Summary List reviews, newest first
// @Tags reviews
// @Produce json
// @Success 200 {array} model.Review
// @Failure 500 {object} errorPayload
// @Router /reviews [get]
func ListReviews(svc service.ReviewService, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return internalError(c, log, "list reviews", err)
		}
		return c.JSON(items)
	}
}
