// Package response renders the one JSON envelope every handler speaks.
package response

import "github.com/gin-gonic/gin"

// Envelope is the body shape shared by every endpoint, success and
// failure alike. Data carries the payload, Errors carries validation
// details, and both are dropped from the JSON when empty.
type Envelope struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
}

// RespondJSON writes the envelope with the given HTTP code. Status is
// "success" or "error" and is mirrored into the body so clients can
// branch without reading the HTTP layer.
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, Envelope{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}
