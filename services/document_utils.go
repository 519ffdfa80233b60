package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Stevekk11/PersonalCloud/config"
)

var imageContentTypes = []string{
	"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp", "image/bmp",
}

var audioContentTypes = []string{
	"audio/mpeg", "audio/mp3", "audio/wav", "audio/x-wav", "audio/x-ms-wma", "audio/x-ms-wax", "audio/ogg",
}

// isFileExtensionForbidden checks the display file name against the denylist
// of executable/script/server-page extensions.
func isFileExtensionForbidden(fileName string) bool {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		return false
	}
	for _, ext := range config.AppConfig.Storage.DisallowedExtensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if normalized == fileExt {
			return true
		}
	}
	return false
}

// sanitizeFileName strips any directory component from name, accepting both
// separator styles. The empty string means the input had no usable base name.
func sanitizeFileName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == ".." || base == "/" {
		return ""
	}
	return base
}

// normalizeFolderPath trims separators and rejects parent-reference and
// home-reference tokens. An empty result means "root".
func normalizeFolderPath(folderPath string) (string, bool) {
	normalized := strings.Trim(strings.ReplaceAll(folderPath, "\\", "/"), "/")
	if normalized == "" {
		return "", true
	}
	if strings.Contains(normalized, "..") || strings.Contains(normalized, "~") {
		return "", false
	}
	return normalized, true
}

func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
