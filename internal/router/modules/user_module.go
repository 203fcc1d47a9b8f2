package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/sheet-auth/internal/interface/http"
	"github.com/oksasatya/sheet-auth/internal/interface/middleware"
	"github.com/oksasatya/sheet-auth/pkg/helpers"
)

// UserModule wires user HTTP handlers and JWT middleware into routes
// Public: POST /api/register, POST /api/login
// Protected: GET /api/profile
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/register", m.Handler.Register)
	rg.POST("/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.JWTAuth(m.JWT))
	{
		auth.GET("/profile", m.Handler.GetProfile)
	}
}
