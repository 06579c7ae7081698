package httputil

import (
	"net/http"

	"github.com/agenpets/scheduler-api/pkg/errors"
	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

// RespondWithSuccess sends a 200 success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	RespondWithStatus(c, http.StatusOK, data)
}

// RespondWithStatus sends a success response with an explicit status code.
// The data key is always present, even for empty lists.
func RespondWithStatus(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"status": StatusSuccess,
		"data":   data,
	})
}

// AbortWithCode sends an error response for conditions raised outside the
// application error codes, such as rate limiting or timeouts.
func AbortWithCode(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Response{
		Status:  StatusError,
		Code:    code,
		Message: message,
	})
}

// RespondWithError maps err onto a status code and sends an error response.
// Non-application errors are reported as internal without leaking the cause.
func RespondWithError(c *gin.Context, err error) {
	code := errors.CodeOf(err)
	message := "internal server error"

	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	c.AbortWithStatusJSON(code.HTTPStatus(), Response{
		Status:  StatusError,
		Code:    code.String(),
		Message: message,
	})
}
