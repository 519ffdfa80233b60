package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Stevekk11/PersonalCloud/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedDocument(t *testing.T, repo *GormDocumentRepository, owner string, name string, ct string, size int64, folder *string, uploadedAt time.Time) models.Document {
	t.Helper()
	doc := models.Document{
		OwnerID:     owner,
		FileName:    name,
		ContentType: ct,
		FileSize:    size,
		StoragePath: "/srv/blobs/" + name,
		FolderPath:  folder,
		UploadedAt:  uploadedAt,
	}
	require.NoError(t, repo.Create(context.Background(), nil, &doc))
	return doc
}

func TestDocumentGetByIDAndOwnerScopesToOwner(t *testing.T) {
	repo := NewGormDocumentRepository(newTestDB(t))
	doc := seedDocument(t, repo, "alice", "a.txt", "text/plain", 10, nil, time.Now().UTC())

	got, err := repo.GetByIDAndOwner(context.Background(), nil, doc.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)

	_, err = repo.GetByIDAndOwner(context.Background(), nil, doc.ID, "bob")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDocumentListByOwnerNewestFirst(t *testing.T) {
	repo := NewGormDocumentRepository(newTestDB(t))
	now := time.Now().UTC()
	old := seedDocument(t, repo, "alice", "old.txt", "text/plain", 1, nil, now.Add(-2*time.Hour))
	newest := seedDocument(t, repo, "alice", "new.txt", "text/plain", 1, nil, now)
	seedDocument(t, repo, "bob", "other.txt", "text/plain", 1, nil, now)

	docs, err := repo.ListByOwner(context.Background(), nil, "alice")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, newest.ID, docs[0].ID)
	assert.Equal(t, old.ID, docs[1].ID)
}

func TestDocumentListByOwnerAndContentTypes(t *testing.T) {
	repo := NewGormDocumentRepository(newTestDB(t))
	now := time.Now().UTC()
	img := seedDocument(t, repo, "alice", "pic.png", "IMAGE/PNG", 1, nil, now)
	seedDocument(t, repo, "alice", "doc.pdf", "application/pdf", 1, nil, now)
	seedDocument(t, repo, "bob", "pic2.png", "image/png", 1, nil, now)

	docs, err := repo.ListByOwnerAndContentTypes(context.Background(), nil, "alice",
		[]string{"image/jpeg", "image/png"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, img.ID, docs[0].ID)
}

func TestDocumentSumSizeByOwner(t *testing.T) {
	repo := NewGormDocumentRepository(newTestDB(t))
	now := time.Now().UTC()

	total, err := repo.SumSizeByOwner(context.Background(), nil, "alice")
	require.NoError(t, err)
	assert.Zero(t, total, "empty catalog must sum to zero, not error")

	seedDocument(t, repo, "alice", "a.txt", "text/plain", 100, nil, now)
	seedDocument(t, repo, "alice", "b.txt", "text/plain", 250, nil, now)
	seedDocument(t, repo, "bob", "c.txt", "text/plain", 999, nil, now)

	total, err = repo.SumSizeByOwner(context.Background(), nil, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(350), total)
}

func TestDocumentDistinctFolderPathsByOwner(t *testing.T) {
	repo := NewGormDocumentRepository(newTestDB(t))
	now := time.Now().UTC()
	music := "music"
	docsFolder := "docs/work"
	empty := ""
	seedDocument(t, repo, "alice", "a.mp3", "audio/mpeg", 1, &music, now)
	seedDocument(t, repo, "alice", "b.mp3", "audio/mpeg", 1, &music, now)
	seedDocument(t, repo, "alice", "c.pdf", "application/pdf", 1, &docsFolder, now)
	seedDocument(t, repo, "alice", "d.pdf", "application/pdf", 1, &empty, now)
	seedDocument(t, repo, "alice", "e.pdf", "application/pdf", 1, nil, now)
	seedDocument(t, repo, "bob", "f.mp3", "audio/mpeg", 1, &music, now)

	paths, err := repo.DistinctFolderPathsByOwner(context.Background(), nil, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/work", "music"}, paths)
}

func TestDocumentUpdateByIDAndOwner(t *testing.T) {
	repo := NewGormDocumentRepository(newTestDB(t))
	doc := seedDocument(t, repo, "alice", "old.pdf", "application/pdf", 1, nil, time.Now().UTC())

	require.NoError(t, repo.UpdateByIDAndOwner(context.Background(), nil, doc.ID, "alice",
		map[string]interface{}{"file_name": "new.pdf"}))
	got, err := repo.GetByIDAndOwner(context.Background(), nil, doc.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "new.pdf", got.FileName)

	// An update keyed to the wrong owner must be a no-op.
	require.NoError(t, repo.UpdateByIDAndOwner(context.Background(), nil, doc.ID, "bob",
		map[string]interface{}{"file_name": "hijacked.pdf"}))
	got, err = repo.GetByIDAndOwner(context.Background(), nil, doc.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, "new.pdf", got.FileName)
}

func TestDocumentDeleteByIDAndOwner(t *testing.T) {
	repo := NewGormDocumentRepository(newTestDB(t))
	doc := seedDocument(t, repo, "alice", "a.txt", "text/plain", 1, nil, time.Now().UTC())

	// Wrong owner deletes nothing.
	require.NoError(t, repo.DeleteByIDAndOwner(context.Background(), nil, doc.ID, "bob"))
	_, err := repo.GetByIDAndOwner(context.Background(), nil, doc.ID, "alice")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByIDAndOwner(context.Background(), nil, doc.ID, "alice"))
	_, err = repo.GetByIDAndOwner(context.Background(), nil, doc.ID, "alice")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
