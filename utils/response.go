package utils

import "github.com/gin-gonic/gin"

// JSONResponse is the envelope every endpoint answers with. The mobile app
// keys on Code: zero means success, any other value selects the message to
// surface to the user.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success wraps data in the zero-code envelope.
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(200, JSONResponse{Message: "success", Data: data})
}

// Error answers with an HTTP status and the business code the app switches on.
func Error(ctx *gin.Context, status int, code int, message string) {
	ctx.JSON(status, JSONResponse{Code: code, Message: message})
}
