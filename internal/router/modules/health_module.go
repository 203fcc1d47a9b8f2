package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/sheet-auth/internal/interface/http"
)

type HealthModule struct {
	Handler *handlers.UserHandler
}

func NewHealthModule(h *handlers.UserHandler) *HealthModule { return &HealthModule{Handler: h} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Handler.Health)
}
