package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers HTTP 200 and signals failure in-band through the
// success flag. This mirrors the contract the original clients were built
// against, so transport-level error codes are never used for API outcomes.

// OK writes a success envelope, merging the given fields next to the flag.
func OK(c *gin.Context, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail writes a failure envelope with the given message.
func Fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": false,
		"error":   message,
	})
}
