package handlers

import (
	"docpress/models"
	"docpress/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpHelper.SendBadRequest(c, err.Error(), httpHelper.EmptyJsonMap())
		return
	}

	resp, err := h.authService.Register(req)
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "registered", resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpHelper.SendBadRequest(c, err.Error(), httpHelper.EmptyJsonMap())
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "logged in", resp)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		httpHelper.SendUnauthorizedError(c, "missing actor identity", httpHelper.EmptyJsonMap())
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "", user)
}

func (h *AuthHandler) Deactivate(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		httpHelper.SendUnauthorizedError(c, "missing actor identity", httpHelper.EmptyJsonMap())
		return
	}

	if err := h.authService.Deactivate(userID); err != nil {
		httpHelper.SendServiceError(c, err, nil)
		return
	}

	httpHelper.SendSuccess(c, "account deactivated", httpHelper.EmptyJsonMap())
}
