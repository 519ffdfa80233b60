package handlers

import (
	"github.com/Stevekk11/PersonalCloud/utils"

	"github.com/gin-gonic/gin"
)

// GetStorageUsage 查询当前用户的存储用量与配额
func GetStorageUsage(c *gin.Context) {
	ownerID := c.GetString("owner_id")
	usage, err := getServices().Account.GetStorageUsage(c.Request.Context(), ownerID)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, usage)
}
