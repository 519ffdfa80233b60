package services

import (
	"context"

	"github.com/Stevekk11/PersonalCloud/config"
	"github.com/Stevekk11/PersonalCloud/repositories"
)

// quotaAccountant derives an owner's consumed bytes from the catalog rather
// than a maintained counter, so the catalog stays the single source of truth.
type quotaAccountant struct {
	documents repositories.DocumentRepository
}

func (q quotaAccountant) Usage(ctx context.Context, ownerID string) (int64, error) {
	return q.documents.SumSizeByOwner(ctx, nil, ownerID)
}

func (q quotaAccountant) Ceiling(premium bool) int64 {
	if premium {
		return config.AppConfig.Storage.PremiumQuota
	}
	return config.AppConfig.Storage.StandardQuota
}
