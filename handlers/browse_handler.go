package handlers

import (
	"docpress/services"

	"github.com/gin-gonic/gin"
)

type BrowseHandler struct {
	browseService services.BrowseService
}

func NewBrowseHandler(browseService services.BrowseService) *BrowseHandler {
	return &BrowseHandler{browseService: browseService}
}

func (h *BrowseHandler) Home(c *gin.Context) {
	subjects, recent, err := h.browseService.Home()
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "", gin.H{
		"subjects":        subjects,
		"recent_concepts": recent,
	})
}

func (h *BrowseHandler) Subject(c *gin.Context) {
	subject, err := h.browseService.SubjectBySlug(c.Param("subjectSlug"))
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "", subject)
}

func (h *BrowseHandler) Topic(c *gin.Context) {
	topic, agg, err := h.browseService.TopicBySlug(c.Param("topicSlug"))
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "", gin.H{
		"topic":          topic,
		"average_rating": agg.Average,
		"ratings_count":  agg.Count,
	})
}

func (h *BrowseHandler) Concept(c *gin.Context) {
	page, err := h.browseService.ConceptPage(c.Request.Context(), c.Param("conceptSlug"))
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "", page)
}

func (h *BrowseHandler) QuickSearch(c *gin.Context) {
	results, err := h.browseService.QuickSearch(c.Query("q"))
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "", results)
}
