package repositories

import (
	"context"

	"github.com/Stevekk11/PersonalCloud/models"

	"gorm.io/gorm"
)

type TxManager interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type AccountRepository interface {
	Create(ctx context.Context, tx *gorm.DB, account *models.Account) error
	GetByID(ctx context.Context, tx *gorm.DB, accountID string) (models.Account, error)
	SetPremium(ctx context.Context, tx *gorm.DB, accountID string, premium bool) error
	CountPremium(ctx context.Context, tx *gorm.DB) (int64, error)
}

// DocumentRepository is the catalog. Every read, update and delete carries an
// owner predicate; cross-tenant rows are never visible, even transiently.
type DocumentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, doc *models.Document) error
	GetByIDAndOwner(ctx context.Context, tx *gorm.DB, docID uint, ownerID string) (models.Document, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID string) ([]models.Document, error)
	ListByOwnerAndContentTypes(ctx context.Context, tx *gorm.DB, ownerID string, contentTypes []string) ([]models.Document, error)
	SumSizeByOwner(ctx context.Context, tx *gorm.DB, ownerID string) (int64, error)
	DistinctFolderPathsByOwner(ctx context.Context, tx *gorm.DB, ownerID string) ([]string, error)
	UpdateByIDAndOwner(ctx context.Context, tx *gorm.DB, docID uint, ownerID string, updates map[string]interface{}) error
	DeleteByIDAndOwner(ctx context.Context, tx *gorm.DB, docID uint, ownerID string) error
}

type Container struct {
	TxManager TxManager
	Accounts  AccountRepository
	Documents DocumentRepository
}
