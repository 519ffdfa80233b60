package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Stevekk11/PersonalCloud/config"
	"github.com/Stevekk11/PersonalCloud/logger"
	"github.com/Stevekk11/PersonalCloud/models"
	"github.com/Stevekk11/PersonalCloud/repositories"
	"github.com/Stevekk11/PersonalCloud/storage"

	"gorm.io/gorm"
)

type AddDocumentInput struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type DocumentAccessOutput struct {
	Document     models.Document
	AbsPath      string
	ContentType  string
	DownloadName string
}

type ImageDetailsOutput struct {
	ID          uint   `json:"id"`
	FileName    string `json:"file_name"`
	FileSize    string `json:"file_size"`
	UploadedAt  string `json:"uploaded_at"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

type DocumentService interface {
	AddDocument(ctx context.Context, ownerID string, in AddDocumentInput) (models.Document, error)
	GetDocument(ctx context.Context, ownerID string, docID uint) (models.Document, error)
	ListDocuments(ctx context.Context, ownerID string) ([]models.Document, error)
	ListImages(ctx context.Context, ownerID string) ([]models.Document, error)
	ListAudio(ctx context.Context, ownerID string) ([]models.Document, error)
	ListFolders(ctx context.Context, ownerID string) ([]string, error)
	RenameDocument(ctx context.Context, ownerID string, docID uint, newName string) (models.Document, error)
	MoveDocument(ctx context.Context, ownerID string, docID uint, folderPath string) (models.Document, error)
	DeleteDocument(ctx context.Context, ownerID string, docID uint) (bool, error)
	GetDownloadInfo(ctx context.Context, ownerID string, docID uint) (DocumentAccessOutput, error)
	GetPreviewInfo(ctx context.Context, ownerID string, docID uint) (DocumentAccessOutput, error)
	GetImageDetails(ctx context.Context, ownerID string, docID uint) (ImageDetailsOutput, error)
}

type documentService struct {
	accounts  repositories.AccountRepository
	documents repositories.DocumentRepository
	blobs     *storage.BlobStore
	quota     quotaAccountant
}

func NewDocumentService(
	accounts repositories.AccountRepository,
	documents repositories.DocumentRepository,
	blobs *storage.BlobStore,
) DocumentService {
	return &documentService{
		accounts:  accounts,
		documents: documents,
		blobs:     blobs,
		quota:     quotaAccountant{documents: documents},
	}
}

func (s *documentService) AddDocument(ctx context.Context, ownerID string, in AddDocumentInput) (models.Document, error) {
	if in.Content == nil || in.Size <= 0 {
		return models.Document{}, newAppError(http.StatusBadRequest, CodeInvalidName, "未选择上传文件", nil)
	}
	if len(in.FileName) > 500 {
		return models.Document{}, newAppError(http.StatusBadRequest, CodeInvalidName, "文件名过长", nil)
	}
	if max := config.AppConfig.Storage.MaxFileSize; max > 0 && in.Size > max {
		return models.Document{}, newAppError(http.StatusBadRequest, CodeQuotaExceeded, "文件大小超出限制", nil)
	}
	if isFileExtensionForbidden(in.FileName) {
		logger.L().Warnw("上传被拒绝：文件类型不允许", "owner_id", ownerID, "file_name", in.FileName)
		return models.Document{}, newAppError(http.StatusBadRequest, CodeForbiddenFileType, "出于安全原因，不允许上传该类型的文件", nil)
	}

	account, err := s.accounts.GetByID(ctx, nil, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Document{}, newAppError(http.StatusNotFound, CodeNotFound, "用户不存在", nil)
		}
		return models.Document{}, newAppError(http.StatusInternalServerError, CodeInternal, "查询用户失败", err)
	}

	usage, err := s.quota.Usage(ctx, ownerID)
	if err != nil {
		return models.Document{}, newAppError(http.StatusInternalServerError, CodeInternal, "统计存储用量失败", err)
	}
	ceiling := s.quota.Ceiling(account.IsPremium)
	if usage+in.Size > ceiling {
		logger.L().Warnw("上传被拒绝：存储配额不足", "owner_id", ownerID, "usage", usage, "size", in.Size)
		return models.Document{}, newAppErrorWithData(http.StatusBadRequest, CodeQuotaExceeded, "存储空间不足", map[string]interface{}{
			"storage_quota":   ceiling,
			"storage_used":    usage,
			"available_space": ceiling - usage,
			"required_space":  in.Size,
		}, nil)
	}

	absPath, _, err := s.blobs.Save(ownerID, in.FileName, in.Content)
	if err != nil {
		return models.Document{}, newAppError(http.StatusInternalServerError, CodeInternal, "保存文件失败", err)
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	doc := models.Document{
		OwnerID:     ownerID,
		FileName:    in.FileName,
		ContentType: contentType,
		FileSize:    in.Size,
		StoragePath: absPath,
		UploadedAt:  time.Now().UTC(),
	}
	if err := s.documents.Create(ctx, nil, &doc); err != nil {
		// 写库失败时回收刚落盘的文件，避免产生孤儿文件
		_ = s.blobs.Delete(absPath)
		return models.Document{}, newAppError(http.StatusInternalServerError, CodeInternal, "保存文件记录失败", err)
	}

	logger.L().Infow("文档上传成功", "owner_id", ownerID, "document_id", doc.ID, "file_name", doc.FileName, "size", doc.FileSize)
	return doc, nil
}

func (s *documentService) GetDocument(ctx context.Context, ownerID string, docID uint) (models.Document, error) {
	doc, err := s.documents.GetByIDAndOwner(ctx, nil, docID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Document{}, newAppError(http.StatusNotFound, CodeNotFound, "文件不存在", nil)
		}
		return models.Document{}, newAppError(http.StatusInternalServerError, CodeInternal, "查询文件失败", err)
	}
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, ownerID string) ([]models.Document, error) {
	docs, err := s.documents.ListByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, CodeInternal, "查询文件列表失败", err)
	}
	return docs, nil
}

func (s *documentService) ListImages(ctx context.Context, ownerID string) ([]models.Document, error) {
	docs, err := s.documents.ListByOwnerAndContentTypes(ctx, nil, ownerID, imageContentTypes)
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, CodeInternal, "查询图片列表失败", err)
	}
	return docs, nil
}

func (s *documentService) ListAudio(ctx context.Context, ownerID string) ([]models.Document, error) {
	docs, err := s.documents.ListByOwnerAndContentTypes(ctx, nil, ownerID, audioContentTypes)
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, CodeInternal, "查询音频列表失败", err)
	}
	return docs, nil
}

func (s *documentService) ListFolders(ctx context.Context, ownerID string) ([]string, error) {
	folders, err := s.documents.DistinctFolderPathsByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, CodeInternal, "查询文件夹列表失败", err)
	}
	return folders, nil
}

func (s *documentService) RenameDocument(ctx context.Context, ownerID string, docID uint, newName string) (models.Document, error) {
	trimmed := strings.TrimSpace(newName)
	if trimmed == "" {
		return models.Document{}, newAppError(http.StatusBadRequest, CodeInvalidName, "文件名不能为空", nil)
	}
	sanitized := sanitizeFileName(trimmed)
	if sanitized == "" || sanitized != trimmed {
		return models.Document{}, newAppError(http.StatusBadRequest, CodeInvalidName, "文件名不合法", nil)
	}
	if len(sanitized) > 500 {
		return models.Document{}, newAppError(http.StatusBadRequest, CodeInvalidName, "文件名过长", nil)
	}

	doc, err := s.GetDocument(ctx, ownerID, docID)
	if err != nil {
		return models.Document{}, err
	}
	if err := s.documents.UpdateByIDAndOwner(ctx, nil, docID, ownerID, map[string]interface{}{"file_name": sanitized}); err != nil {
		return models.Document{}, newAppError(http.StatusInternalServerError, CodeInternal, "重命名文件失败", err)
	}
	doc.FileName = sanitized
	return doc, nil
}

func (s *documentService) MoveDocument(ctx context.Context, ownerID string, docID uint, folderPath string) (models.Document, error) {
	normalized, ok := normalizeFolderPath(folderPath)
	if !ok {
		return models.Document{}, newAppError(http.StatusBadRequest, CodeInvalidPath, "文件夹路径不合法", nil)
	}

	doc, err := s.GetDocument(ctx, ownerID, docID)
	if err != nil {
		return models.Document{}, err
	}

	var target *string
	if normalized != "" {
		target = &normalized
	}
	if err := s.documents.UpdateByIDAndOwner(ctx, nil, docID, ownerID, map[string]interface{}{"folder_path": target}); err != nil {
		return models.Document{}, newAppError(http.StatusInternalServerError, CodeInternal, "移动文件失败", err)
	}
	doc.FolderPath = target
	return doc, nil
}

// DeleteDocument is idempotent from the caller's perspective: a missing row
// reports false, not an error. The stored path is re-validated against the
// storage root before any filesystem access.
func (s *documentService) DeleteDocument(ctx context.Context, ownerID string, docID uint) (bool, error) {
	doc, err := s.documents.GetByIDAndOwner(ctx, nil, docID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, newAppError(http.StatusInternalServerError, CodeInternal, "查询文件失败", err)
	}

	if err := s.blobs.Delete(doc.StoragePath); err != nil {
		if errors.Is(err, storage.ErrPathTraversal) {
			logger.L().Errorw("删除文件时检测到路径穿越", "owner_id", ownerID, "document_id", docID)
			return false, newAppError(http.StatusForbidden, CodePathTraversal, "检测到路径穿越尝试", err)
		}
		return false, newAppError(http.StatusInternalServerError, CodeInternal, "删除文件失败", err)
	}

	if err := s.documents.DeleteByIDAndOwner(ctx, nil, docID, ownerID); err != nil {
		return false, newAppError(http.StatusInternalServerError, CodeInternal, "删除文件记录失败", err)
	}

	logger.L().Infow("文档已删除", "owner_id", ownerID, "document_id", docID)
	return true, nil
}

func (s *documentService) getAccessInfo(ctx context.Context, ownerID string, docID uint) (DocumentAccessOutput, error) {
	doc, err := s.GetDocument(ctx, ownerID, docID)
	if err != nil {
		return DocumentAccessOutput{}, err
	}

	absPath, err := s.blobs.Resolve(doc.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrPathTraversal) {
			logger.L().Errorw("访问文件时检测到路径穿越", "owner_id", ownerID, "document_id", docID)
			return DocumentAccessOutput{}, newAppError(http.StatusForbidden, CodePathTraversal, "检测到路径穿越尝试", err)
		}
		return DocumentAccessOutput{}, newAppError(http.StatusInternalServerError, CodeInternal, "解析文件路径失败", err)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return DocumentAccessOutput{}, newAppError(http.StatusNotFound, CodeNotFound, "文件不存在于存储中", nil)
	}

	return DocumentAccessOutput{
		Document:     doc,
		AbsPath:      absPath,
		ContentType:  doc.ContentType,
		DownloadName: doc.FileName,
	}, nil
}

func (s *documentService) GetDownloadInfo(ctx context.Context, ownerID string, docID uint) (DocumentAccessOutput, error) {
	return s.getAccessInfo(ctx, ownerID, docID)
}

func (s *documentService) GetPreviewInfo(ctx context.Context, ownerID string, docID uint) (DocumentAccessOutput, error) {
	return s.getAccessInfo(ctx, ownerID, docID)
}

func (s *documentService) GetImageDetails(ctx context.Context, ownerID string, docID uint) (ImageDetailsOutput, error) {
	access, err := s.getAccessInfo(ctx, ownerID, docID)
	if err != nil {
		return ImageDetailsOutput{}, err
	}
	if !strings.HasPrefix(strings.ToLower(access.Document.ContentType), "image/") {
		return ImageDetailsOutput{}, newAppError(http.StatusNotFound, CodeNotFound, "文件不是图片", nil)
	}

	width, height, err := GetImageDimensions(access.AbsPath)
	if err != nil {
		return ImageDetailsOutput{}, newAppError(http.StatusInternalServerError, CodeInternal, "读取图片信息失败", err)
	}

	doc := access.Document
	return ImageDetailsOutput{
		ID:          doc.ID,
		FileName:    doc.FileName,
		FileSize:    formatFileSize(doc.FileSize),
		UploadedAt:  doc.UploadedAt.Format("02.01.2006 15:04"),
		ContentType: doc.ContentType,
		Width:       width,
		Height:      height,
	}, nil
}
