package handlers

import (
	"errors"
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/sheet-auth/internal/application"
	"github.com/oksasatya/sheet-auth/internal/interface/middleware"
	"github.com/oksasatya/sheet-auth/pkg/helpers"
	"github.com/oksasatya/sheet-auth/pkg/response"
	"github.com/oksasatya/sheet-auth/pkg/validation"
)

const (
	MsgRegisterMissing    = "name, email and password are required"
	MsgFieldTooLong       = "name or email is too long"
	MsgLoginMissing       = "email and password are required"
	MsgEmailTaken         = "this email is already registered"
	MsgInvalidCredentials = "invalid credentials"
	MsgInternal           = "internal server error"
)

// authStats is published under /api/debug/vars when the debug module is mounted.
// expvar names are process-global, so every handler in the process shares these counters.
var authStats = expvar.NewMap("auth")

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Now: time.Now}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=200"`
	Email    string `json:"email" binding:"required,notblank,max=254"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,notblank"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) internalError(c *gin.Context, op string, err error) {
	helpers.LogError(h.Logger, op+" failed", err, logrus.Fields{
		"request_id": c.GetString("request_id"),
		"path":       c.Request.URL.Path,
	})
	response.Error(c, http.StatusInternalServerError, MsgInternal, nil)
}

// Health GET /api/health
func (h *UserHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, "API ok", gin.H{"time": h.Now().UTC().Format(time.RFC3339Nano)})
}

// Register POST /api/register {name, email, password}
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		msg := MsgRegisterMissing
		if validation.HasTag(err, "max") {
			msg = MsgFieldTooLong
		}
		response.Error(c, http.StatusBadRequest, msg, gin.H{"errors": validation.ToDetails(err)})
		return
	}

	_, err := h.Svc.Register(c.Request.Context(), userapp.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	switch {
	case err == nil:
		authStats.Add("register_ok", 1)
		response.Success(c, http.StatusCreated, "user registered", nil)
	case errors.Is(err, userapp.ErrMissingFields):
		response.Error(c, http.StatusBadRequest, MsgRegisterMissing, nil)
	case errors.Is(err, userapp.ErrPasswordTooLong):
		response.Error(c, http.StatusBadRequest, err.Error(), gin.H{"errors": map[string]string{"password": "must be at most 72 bytes"}})
	case errors.Is(err, userapp.ErrEmailTaken):
		authStats.Add("register_conflict", 1)
		response.Error(c, http.StatusConflict, MsgEmailTaken, nil)
	default:
		h.internalError(c, "register", err)
	}
}

// Login POST /api/login {email, password}
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, MsgLoginMissing, gin.H{"errors": validation.ToDetails(err)})
		return
	}

	res, token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		authStats.Add("login_ok", 1)
		response.Success(c, http.StatusOK, "login successful", gin.H{
			"token":      token,
			"expires_at": exp.UTC().Format(time.RFC3339),
			"user":       res,
		})
	case errors.Is(err, userapp.ErrMissingFields):
		response.Error(c, http.StatusBadRequest, MsgLoginMissing, nil)
	case errors.Is(err, userapp.ErrInvalidCredentials):
		authStats.Add("login_failed", 1)
		response.Error(c, http.StatusBadRequest, MsgInvalidCredentials, nil)
	default:
		h.internalError(c, "login", err)
	}
}

// GetProfile GET /api/profile, behind middleware.JWTAuth
func (h *UserHandler) GetProfile(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, middleware.MsgTokenRequired, nil)
		return
	}
	payload := gin.H{
		"user": gin.H{
			"email": claims.Email,
			"name":  claims.Name,
		},
	}
	if claims.ExpiresAt != nil {
		payload["expires_at"] = claims.ExpiresAt.UTC().Format(time.RFC3339)
	}
	response.Success(c, http.StatusOK, "", payload)
}
