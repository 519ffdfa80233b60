package handlers

import (
	"github.com/Stevekk11/PersonalCloud/utils"

	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "personal-cloud",
	})
}
