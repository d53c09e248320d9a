package handlers

import (
	"docpress/models"
	"docpress/services"

	"github.com/gin-gonic/gin"
)

type ConceptHandler struct {
	conceptService services.ConceptService
}

func NewConceptHandler(conceptService services.ConceptService) *ConceptHandler {
	return &ConceptHandler{conceptService: conceptService}
}

func (h *ConceptHandler) Create(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		httpHelper.SendUnauthorizedError(c, "missing actor identity", httpHelper.EmptyJsonMap())
		return
	}

	var req models.CreateConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpHelper.SendBadRequest(c, err.Error(), httpHelper.EmptyJsonMap())
		return
	}

	result, err := h.conceptService.Create(c.Request.Context(), req, userID)
	if err != nil {
		// A partial write still created the structured record; hand it back
		// alongside the stage that needs retrying.
		httpHelper.SendServiceError(c, err, result)
		return
	}

	httpHelper.SendCreated(c, "concept created", result)
}

func (h *ConceptHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	concept, err := h.conceptService.Get(id)
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "", concept)
}

func (h *ConceptHandler) GetList(c *gin.Context) {
	concepts, err := h.conceptService.GetList()
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "", concepts)
}

func (h *ConceptHandler) GetContent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	content, err := h.conceptService.GetContent(c.Request.Context(), id)
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "", content)
}

func (h *ConceptHandler) Update(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		httpHelper.SendUnauthorizedError(c, "missing actor identity", httpHelper.EmptyJsonMap())
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpHelper.SendBadRequest(c, err.Error(), httpHelper.EmptyJsonMap())
		return
	}

	result, err := h.conceptService.Update(c.Request.Context(), id, req, userID)
	if err != nil {
		httpHelper.SendServiceError(c, err, result)
		return
	}

	httpHelper.SendSuccess(c, "concept updated", result)
}

// AttachContent retries the content half of a create that failed between
// stores. Safe to call repeatedly.
func (h *ConceptHandler) AttachContent(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		httpHelper.SendUnauthorizedError(c, "missing actor identity", httpHelper.EmptyJsonMap())
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Content     string             `json:"content"`
		ContentType models.ContentType `json:"content_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httpHelper.SendBadRequest(c, err.Error(), httpHelper.EmptyJsonMap())
		return
	}

	result, err := h.conceptService.AttachContent(c.Request.Context(), id, req.Content, req.ContentType, userID)
	if err != nil {
		httpHelper.SendServiceError(c, err, result)
		return
	}

	httpHelper.SendSuccess(c, "content attached", result)
}

func (h *ConceptHandler) Move(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.MoveConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpHelper.SendBadRequest(c, err.Error(), httpHelper.EmptyJsonMap())
		return
	}

	concept, err := h.conceptService.Move(c.Request.Context(), id, req.NewTopicID)
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "concept moved", concept)
}

func (h *ConceptHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.conceptService.Delete(c.Request.Context(), id); err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "concept deleted", httpHelper.EmptyJsonMap())
}

// Search is the full-text path: content store first, then hierarchy-store
// re-validation. Author and topic variants never touch the content store.
func (h *ConceptHandler) Search(c *gin.Context) {
	q := c.Query("q")
	author := c.Query("author")
	topic := c.Query("topic")

	var concepts []models.Concept
	var err error

	switch {
	case q != "":
		concepts, err = h.conceptService.Search(c.Request.Context(), q)
	case author != "":
		concepts, err = h.conceptService.SearchByAuthor(author)
	case topic != "":
		concepts, err = h.conceptService.SearchByTopic(topic)
	default:
		httpHelper.SendBadRequest(c, "one of q, author or topic is required", httpHelper.EmptyJsonMap())
		return
	}

	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "", concepts)
}
