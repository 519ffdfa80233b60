package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/Stevekk11/PersonalCloud/repositories"

	"gorm.io/gorm"
)

type StorageUsageOutput struct {
	StorageQuota    int64   `json:"storage_quota"`
	StorageUsed     int64   `json:"storage_used"`
	AvailableSpace  int64   `json:"available_space"`
	UsagePercent    float64 `json:"usage_percent"`
	StorageQuotaStr string  `json:"storage_quota_formatted"`
	StorageUsedStr  string  `json:"storage_used_formatted"`
	IsPremium       bool    `json:"is_premium"`
}

type AccountService interface {
	GetStorageUsage(ctx context.Context, ownerID string) (StorageUsageOutput, error)
}

type accountService struct {
	accounts repositories.AccountRepository
	quota    quotaAccountant
}

func NewAccountService(accounts repositories.AccountRepository, documents repositories.DocumentRepository) AccountService {
	return &accountService{
		accounts: accounts,
		quota:    quotaAccountant{documents: documents},
	}
}

func (s *accountService) GetStorageUsage(ctx context.Context, ownerID string) (StorageUsageOutput, error) {
	account, err := s.accounts.GetByID(ctx, nil, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StorageUsageOutput{}, newAppError(http.StatusNotFound, CodeNotFound, "用户不存在", nil)
		}
		return StorageUsageOutput{}, newAppError(http.StatusInternalServerError, CodeInternal, "查询用户失败", err)
	}

	used, err := s.quota.Usage(ctx, ownerID)
	if err != nil {
		return StorageUsageOutput{}, newAppError(http.StatusInternalServerError, CodeInternal, "统计存储用量失败", err)
	}

	ceiling := s.quota.Ceiling(account.IsPremium)
	usagePercent := 0.0
	if ceiling > 0 {
		usagePercent = float64(used) / float64(ceiling) * 100
	}

	return StorageUsageOutput{
		StorageQuota:    ceiling,
		StorageUsed:     used,
		AvailableSpace:  ceiling - used,
		UsagePercent:    usagePercent,
		StorageQuotaStr: formatFileSize(ceiling),
		StorageUsedStr:  formatFileSize(used),
		IsPremium:       account.IsPremium,
	}, nil
}
