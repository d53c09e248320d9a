package handlers

import (
	"docpress/models"
	"docpress/services"

	"github.com/gin-gonic/gin"
)

type TopicHandler struct {
	topicService services.TopicService
}

func NewTopicHandler(topicService services.TopicService) *TopicHandler {
	return &TopicHandler{topicService: topicService}
}

func (h *TopicHandler) Create(c *gin.Context) {
	var req models.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpHelper.SendBadRequest(c, err.Error(), httpHelper.EmptyJsonMap())
		return
	}

	topic, err := h.topicService.Create(req)
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendCreated(c, "topic created", topic)
}

func (h *TopicHandler) GetList(c *gin.Context) {
	topics, err := h.topicService.GetList()
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "", topics)
}

func (h *TopicHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	topic, err := h.topicService.Get(id)
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "", topic)
}

func (h *TopicHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpHelper.SendBadRequest(c, err.Error(), httpHelper.EmptyJsonMap())
		return
	}

	topic, err := h.topicService.Update(id, req)
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "topic updated", topic)
}

func (h *TopicHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.topicService.Delete(c.Request.Context(), id); err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "topic deleted", httpHelper.EmptyJsonMap())
}
