package handlers

import (
	"docpress/models"
	"docpress/services"

	"github.com/gin-gonic/gin"
)

type SubjectHandler struct {
	subjectService services.SubjectService
}

func NewSubjectHandler(subjectService services.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

func (h *SubjectHandler) Create(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		httpHelper.SendUnauthorizedError(c, "missing actor identity", httpHelper.EmptyJsonMap())
		return
	}

	var req models.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpHelper.SendBadRequest(c, err.Error(), httpHelper.EmptyJsonMap())
		return
	}

	subject, err := h.subjectService.Create(req, userID)
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendCreated(c, "subject created", subject)
}

func (h *SubjectHandler) GetList(c *gin.Context) {
	subjects, err := h.subjectService.GetList()
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "", subjects)
}

func (h *SubjectHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	subject, err := h.subjectService.Get(id)
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "", subject)
}

func (h *SubjectHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpHelper.SendBadRequest(c, err.Error(), httpHelper.EmptyJsonMap())
		return
	}

	subject, err := h.subjectService.Update(id, req)
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "subject updated", subject)
}

func (h *SubjectHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.subjectService.Delete(c.Request.Context(), id); err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "subject deleted", httpHelper.EmptyJsonMap())
}
