package handlers

import (
	"github.com/Stevekk11/PersonalCloud/utils"

	"github.com/gin-gonic/gin"
)

// PremiumStatus 查询当前磁盘容量与高级账户名额
func PremiumStatus(c *gin.Context) {
	snapshot, err := getServices().Capacity.Snapshot(c.Request.Context())
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, snapshot)
}

// UpgradeToPremium 升级为高级账户（受全局容量限制）
func UpgradeToPremium(c *gin.Context) {
	ownerID := c.GetString("owner_id")
	if respondServiceError(c, getServices().Capacity.UpgradeToPremium(c.Request.Context(), ownerID)) {
		return
	}
	utils.Success(c, gin.H{"is_premium": true})
}

// DowngradeFromPremium 取消高级账户（不受容量限制）
func DowngradeFromPremium(c *gin.Context) {
	ownerID := c.GetString("owner_id")
	if respondServiceError(c, getServices().Capacity.DowngradeFromPremium(c.Request.Context(), ownerID)) {
		return
	}
	utils.Success(c, gin.H{"is_premium": false})
}
