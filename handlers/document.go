package handlers

import (
	"net/http"
	"strconv"

	"github.com/Stevekk11/PersonalCloud/services"
	"github.com/Stevekk11/PersonalCloud/utils"

	"github.com/gin-gonic/gin"
)

func documentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "bad_request", "文件ID不合法")
		return 0, false
	}
	return uint(id), true
}

// ListDocuments 获取当前用户的文件列表（按上传时间倒序）
func ListDocuments(c *gin.Context) {
	ownerID := c.GetString("owner_id")
	docs, err := getServices().Document.ListDocuments(c.Request.Context(), ownerID)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, gin.H{"documents": docs})
}

// UploadDocument 上传文件
func UploadDocument(c *gin.Context) {
	ownerID := c.GetString("owner_id")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "bad_request", "获取上传文件失败")
		return
	}
	defer file.Close()

	doc, err := getServices().Document.AddDocument(c.Request.Context(), ownerID, services.AddDocumentInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, doc)
}

// DownloadDocument 下载文件
func DownloadDocument(c *gin.Context) {
	ownerID := c.GetString("owner_id")
	id, ok := documentID(c)
	if !ok {
		return
	}

	access, err := getServices().Document.GetDownloadInfo(c.Request.Context(), ownerID, id)
	if respondServiceError(c, err) {
		return
	}
	c.FileAttachment(access.AbsPath, access.DownloadName)
}

// PreviewDocument 在线预览文件
func PreviewDocument(c *gin.Context) {
	ownerID := c.GetString("owner_id")
	id, ok := documentID(c)
	if !ok {
		return
	}

	access, err := getServices().Document.GetPreviewInfo(c.Request.Context(), ownerID, id)
	if respondServiceError(c, err) {
		return
	}
	c.Header("Content-Type", access.ContentType)
	c.Header("Content-Disposition", "inline")
	c.File(access.AbsPath)
}

// GetImageDetails 获取图片详情（含尺寸）
func GetImageDetails(c *gin.Context) {
	ownerID := c.GetString("owner_id")
	id, ok := documentID(c)
	if !ok {
		return
	}

	details, err := getServices().Document.GetImageDetails(c.Request.Context(), ownerID, id)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, details)
}

// Gallery 获取当前用户的图片列表
func Gallery(c *gin.Context) {
	ownerID := c.GetString("owner_id")
	docs, err := getServices().Document.ListImages(c.Request.Context(), ownerID)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, gin.H{"documents": docs})
}

// Music 获取当前用户的音频列表
func Music(c *gin.Context) {
	ownerID := c.GetString("owner_id")
	docs, err := getServices().Document.ListAudio(c.Request.Context(), ownerID)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, gin.H{"documents": docs})
}

// ListFolders 获取当前用户的文件夹列表
func ListFolders(c *gin.Context) {
	ownerID := c.GetString("owner_id")
	folders, err := getServices().Document.ListFolders(c.Request.Context(), ownerID)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, gin.H{"folders": folders})
}

type renameDocumentRequest struct {
	FileName string `json:"file_name" binding:"required"`
}

// RenameDocument 重命名文件（仅修改显示名）
func RenameDocument(c *gin.Context) {
	ownerID := c.GetString("owner_id")
	id, ok := documentID(c)
	if !ok {
		return
	}

	var req renameDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "bad_request", "请求参数错误")
		return
	}

	doc, err := getServices().Document.RenameDocument(c.Request.Context(), ownerID, id, req.FileName)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, doc)
}

type moveDocumentRequest struct {
	FolderPath string `json:"folder_path"`
}

// MoveDocument 移动文件到指定文件夹（空路径表示根目录）
func MoveDocument(c *gin.Context) {
	ownerID := c.GetString("owner_id")
	id, ok := documentID(c)
	if !ok {
		return
	}

	var req moveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "bad_request", "请求参数错误")
		return
	}

	doc, err := getServices().Document.MoveDocument(c.Request.Context(), ownerID, id, req.FolderPath)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, doc)
}

// DeleteDocument 删除文件（重复删除返回 deleted=false）
func DeleteDocument(c *gin.Context) {
	ownerID := c.GetString("owner_id")
	id, ok := documentID(c)
	if !ok {
		return
	}

	deleted, err := getServices().Document.DeleteDocument(c.Request.Context(), ownerID, id)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, gin.H{"deleted": deleted})
}
