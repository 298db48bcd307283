package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Answer renders the success envelope: status 200, body is the answer text
// JSON-encoded. Source chunks are computed upstream but never serialized to
// the caller.
func Answer(c *gin.Context, text string) {
	c.JSON(http.StatusOK, text)
}

// Error renders the failure envelope. The chat pipeline collapses every
// failure to 500 with a single descriptive message; middleware outside the
// pipeline passes honest status codes through here.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
