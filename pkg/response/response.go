package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform body of every API response: {ok, message?, ...payload}.
type Envelope map[string]any

func build(ok bool, message string, payload gin.H) Envelope {
	env := make(Envelope, len(payload)+2)
	for k, v := range payload {
		env[k] = v
	}
	env["ok"] = ok
	if message != "" {
		env["message"] = message
	}
	return env
}

// Success writes an ok=true envelope. Payload keys are merged at the top level.
func Success(ctx *gin.Context, status int, message string, payload gin.H) Envelope {
	if status == 0 {
		status = http.StatusOK
	}
	env := build(true, message, payload)
	ctx.JSON(status, env)
	return env
}

// Error writes an ok=false envelope and aborts the remaining handler chain.
func Error(ctx *gin.Context, status int, message string, payload gin.H) Envelope {
	if status == 0 {
		status = http.StatusBadRequest
	}
	env := build(false, message, payload)
	ctx.AbortWithStatusJSON(status, env)
	return env
}
