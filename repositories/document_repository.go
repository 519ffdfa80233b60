package repositories

import (
	"context"

	"github.com/Stevekk11/PersonalCloud/models"

	"gorm.io/gorm"
)

type GormDocumentRepository struct {
	db *gorm.DB
}

func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

func (r *GormDocumentRepository) Create(_ context.Context, tx *gorm.DB, doc *models.Document) error {
	return useTx(r.db, tx).Create(doc).Error
}

func (r *GormDocumentRepository) GetByIDAndOwner(_ context.Context, tx *gorm.DB, docID uint, ownerID string) (models.Document, error) {
	var doc models.Document
	err := useTx(r.db, tx).
		Where("id = ? AND owner_id = ?", docID, ownerID).
		First(&doc).Error
	return doc, err
}

func (r *GormDocumentRepository) ListByOwner(_ context.Context, tx *gorm.DB, ownerID string) ([]models.Document, error) {
	var docs []models.Document
	err := useTx(r.db, tx).
		Where("owner_id = ?", ownerID).
		Order("uploaded_at desc").
		Find(&docs).Error
	return docs, err
}

func (r *GormDocumentRepository) ListByOwnerAndContentTypes(_ context.Context, tx *gorm.DB, ownerID string, contentTypes []string) ([]models.Document, error) {
	var docs []models.Document
	err := useTx(r.db, tx).
		Where("owner_id = ? AND LOWER(content_type) IN ?", ownerID, contentTypes).
		Order("uploaded_at desc").
		Find(&docs).Error
	return docs, err
}

func (r *GormDocumentRepository) SumSizeByOwner(_ context.Context, tx *gorm.DB, ownerID string) (int64, error) {
	var total int64
	err := useTx(r.db, tx).Model(&models.Document{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(file_size), 0)").
		Scan(&total).Error
	return total, err
}

func (r *GormDocumentRepository) DistinctFolderPathsByOwner(_ context.Context, tx *gorm.DB, ownerID string) ([]string, error) {
	var paths []string
	err := useTx(r.db, tx).Model(&models.Document{}).
		Where("owner_id = ? AND folder_path IS NOT NULL AND folder_path <> ''", ownerID).
		Distinct().
		Order("folder_path asc").
		Pluck("folder_path", &paths).Error
	return paths, err
}

func (r *GormDocumentRepository) UpdateByIDAndOwner(_ context.Context, tx *gorm.DB, docID uint, ownerID string, updates map[string]interface{}) error {
	return useTx(r.db, tx).Model(&models.Document{}).
		Where("id = ? AND owner_id = ?", docID, ownerID).
		Updates(updates).Error
}

func (r *GormDocumentRepository) DeleteByIDAndOwner(_ context.Context, tx *gorm.DB, docID uint, ownerID string) error {
	return useTx(r.db, tx).
		Where("id = ? AND owner_id = ?", docID, ownerID).
		Delete(&models.Document{}).Error
}
