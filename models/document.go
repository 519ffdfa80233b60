package models

import "time"

// Document is one catalog row per uploaded file. StoragePath is internal and
// always resolves inside the configured storage root; it is never derived
// from the user-controlled FileName.
type Document struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID     string    `gorm:"type:varchar(64);not null;index" json:"owner_id"`
	FileName    string    `gorm:"type:varchar(500);not null" json:"file_name"`
	ContentType string    `gorm:"type:varchar(100);not null" json:"content_type"`
	FileSize    int64     `gorm:"not null" json:"file_size"`
	StoragePath string    `gorm:"type:varchar(1000);not null" json:"-"`
	FolderPath  *string   `gorm:"type:varchar(1000)" json:"folder_path,omitempty"`
	UploadedAt  time.Time `gorm:"index" json:"uploaded_at"`
}
