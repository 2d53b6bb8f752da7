package response

import "github.com/gin-gonic/gin"

// Success writes data as-is with a 200.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, data)
}

// Error writes a machine-readable error code plus a human-readable message.
func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": code, "message": message})
}

// Fail writes a bare error message without a code, for failures that have no
// dedicated kind.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
