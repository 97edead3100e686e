package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the common part of every clinic API response. Payload fields
// sit flat beside it, so typed responses embed Envelope rather than nesting
// under a data key.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OK reports whether the server accepted the request.
func (e Envelope) OK() bool { return e.Success }

// Note returns the server-supplied message, if any.
func (e Envelope) Note() string { return e.Message }

// RespondWithSuccess sends a success envelope with the payload fields merged
// in flat.
func RespondWithSuccess(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// RespondWithError sends a failure envelope carrying the given message.
func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
