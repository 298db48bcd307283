package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/docchat/docchat/internal/middleware"
)

func getUserID(c *gin.Context) string {
	value, _ := c.Get(middleware.ContextUserIDKey)
	userID, _ := value.(string)
	return userID
}
