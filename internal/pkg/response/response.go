package response

import "github.com/gin-gonic/gin"

// JSON writes a plain JSON body. Lists and documents are returned
// bare, without an envelope, to match the wire format the client
// expects.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Text writes a plain-text confirmation message.
func Text(c *gin.Context, statusCode int, message string) {
	c.String(statusCode, message)
}

// Error writes a plain-text error message.
func Error(c *gin.Context, statusCode int, message string) {
	c.String(statusCode, message)
}
