// Package httperr renders the API error envelope:
//
//	{"error": {"code": 400, "message": "...", "path": "/api/v1/...", "details": [...]}}
package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Path    string      `json:"path"`
	Details interface{} `json:"details,omitempty"`
}

type Envelope struct {
	Error ErrorBody `json:"error"`
}

func respond(c *gin.Context, code int, message string, details interface{}) {
	c.JSON(code, Envelope{Error: ErrorBody{
		Code:    code,
		Message: message,
		Path:    c.Request.URL.Path,
		Details: details,
	}})
}

func abort(c *gin.Context, code int, message string, details interface{}) {
	respond(c, code, message, details)
	c.Abort()
}

func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	respond(c, http.StatusBadRequest, message, nil)
}

// BadRequestWithDetails carries validation details alongside the message.
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	respond(c, http.StatusBadRequest, message, details)
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	abort(c, http.StatusUnauthorized, message, nil)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Not authorized"
	}
	abort(c, http.StatusForbidden, message, nil)
}

func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	respond(c, http.StatusNotFound, message, nil)
}

func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	respond(c, http.StatusConflict, message, nil)
}

func Internal(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	respond(c, http.StatusInternalServerError, message, nil)
}
