package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskflow/taskflow-api/config"
	userapp "github.com/taskflow/taskflow-api/internal/application"
	"github.com/taskflow/taskflow-api/pkg/helpers"
	"github.com/taskflow/taskflow-api/pkg/mailer"
	tpl "github.com/taskflow/taskflow-api/pkg/mailer/templates"
	"github.com/taskflow/taskflow-api/pkg/response"
	"github.com/taskflow/taskflow-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
	Cfg    *config.Config
	Pub    *helpers.RabbitPublisher
}

func NewAuthHandler(svc *userapp.Service, logger *logrus.Logger, cfg *config.Config, pub *helpers.RabbitPublisher) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cfg: cfg, Pub: pub}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register - POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	h.enqueueWelcome(c, u.Email, u.Name)
	response.Success(c, http.StatusCreated, gin.H{"user_id": u.ID}, "registered", nil)
}

// Login - POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	_, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// unknown email and wrong password answer identically
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, "login successful", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Refresh - POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, "token refreshed", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

func (h *AuthHandler) enqueueWelcome(c *gin.Context, email, name string) {
	if h.Pub == nil || h.Cfg == nil || !h.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       email,
		Template: tpl.Welcome,
		Data: map[string]any{
			"Name":       name,
			"AppName":    h.Cfg.AppName,
			"SupportURL": h.Cfg.SupportURL,
		},
	}
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("email", email).Warn("enqueue welcome email failed")
	}
}
