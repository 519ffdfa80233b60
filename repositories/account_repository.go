package repositories

import (
	"context"

	"github.com/Stevekk11/PersonalCloud/models"

	"gorm.io/gorm"
)

type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

func (r *GormAccountRepository) Create(_ context.Context, tx *gorm.DB, account *models.Account) error {
	return useTx(r.db, tx).Create(account).Error
}

func (r *GormAccountRepository) GetByID(_ context.Context, tx *gorm.DB, accountID string) (models.Account, error) {
	var account models.Account
	err := useTx(r.db, tx).Where("id = ?", accountID).First(&account).Error
	return account, err
}

func (r *GormAccountRepository) SetPremium(_ context.Context, tx *gorm.DB, accountID string, premium bool) error {
	return useTx(r.db, tx).Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("is_premium", premium).Error
}

func (r *GormAccountRepository) CountPremium(_ context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := useTx(r.db, tx).Model(&models.Account{}).
		Where("is_premium = ?", true).
		Count(&count).Error
	return count, err
}
