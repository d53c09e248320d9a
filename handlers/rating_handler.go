package handlers

import (
	"docpress/models"
	"docpress/services"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService services.RatingService
}

func NewRatingHandler(ratingService services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

func (h *RatingHandler) RateConcept(c *gin.Context) {
	h.rate(c, models.TargetConcept)
}

func (h *RatingHandler) RateTopic(c *gin.Context) {
	h.rate(c, models.TargetTopic)
}

func (h *RatingHandler) rate(c *gin.Context, target models.RatingTarget) {
	userID, ok := actorID(c)
	if !ok {
		httpHelper.SendUnauthorizedError(c, "missing actor identity", httpHelper.EmptyJsonMap())
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpHelper.SendBadRequest(c, err.Error(), httpHelper.EmptyJsonMap())
		return
	}

	rating, err := h.ratingService.Rate(target, id, userID, req.Score, req.Comment)
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "rating saved", rating)
}

func (h *RatingHandler) GetMyRatings(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		httpHelper.SendUnauthorizedError(c, "missing actor identity", httpHelper.EmptyJsonMap())
		return
	}

	ratings, err := h.ratingService.GetByUser(userID)
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "", ratings)
}
