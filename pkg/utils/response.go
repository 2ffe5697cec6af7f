package utils

import (
	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, code int, message string, err error) {
	response := APIResponse{
		Success: false,
		Message: message,
	}

	if err != nil {
		response.Error = err.Error()
	}

	c.JSON(code, response)
}

// BareError writes the minimal {"error": ...} body used by the generation endpoint.
func BareError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// DecodeError returns the error message of an enveloped response body, if any.
func (r APIResponse) DecodeError() string {
	if r.Error != "" {
		return r.Error
	}
	return r.Message
}
