package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Stevekk11/PersonalCloud/logger"

	"github.com/google/uuid"
)

// ErrPathTraversal marks a candidate path that resolves outside the storage
// root. Callers must treat it as an authorization failure, never repair it.
var ErrPathTraversal = errors.New("路径越过存储根目录")

// BlobStore persists raw file bytes under a single root directory. Physical
// names are generated UUIDs with the original extension preserved, so
// user-supplied display names never touch the filesystem.
type BlobStore struct {
	root string
}

func NewBlobStore(root string) (*BlobStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("解析存储根目录失败: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("创建存储根目录失败: %w", err)
	}
	return &BlobStore{root: abs}, nil
}

func (b *BlobStore) Root() string {
	return b.root
}

// Resolve canonicalizes path and verifies it stays inside the root. Escape
// attempts are logged as security events before the error is returned.
func (b *BlobStore) Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("解析路径失败: %w", err)
	}
	if abs != b.root && !strings.HasPrefix(abs, b.root+string(os.PathSeparator)) {
		logger.L().Warnw("检测到路径穿越尝试",
			"event", "path_traversal",
			"path", path,
			"resolved", abs,
			"root", b.root,
		)
		return "", ErrPathTraversal
	}
	return abs, nil
}

// Save streams src into a freshly generated blob under the owner's namespace
// and returns the absolute resolved path.
func (b *BlobStore) Save(ownerID string, fileName string, src io.Reader) (string, int64, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	storageName := uuid.New().String() + ext

	dir := filepath.Join(b.root, ownerID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("创建存储目录失败: %w", err)
	}

	absPath, err := b.Resolve(filepath.Join(dir, storageName))
	if err != nil {
		return "", 0, err
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return "", 0, fmt.Errorf("创建文件失败: %w", err)
	}
	written, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		_ = os.Remove(absPath)
		return "", 0, fmt.Errorf("保存文件失败: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(absPath)
		return "", 0, fmt.Errorf("关闭文件失败: %w", err)
	}

	return absPath, written, nil
}

func (b *BlobStore) Open(path string) (*os.File, error) {
	abs, err := b.Resolve(path)
	if err != nil {
		return nil, err
	}
	return os.Open(abs)
}

func (b *BlobStore) Exists(path string) (bool, error) {
	abs, err := b.Resolve(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes the blob if present. Deleting an absent blob is not an
// error; deleting outside the root is.
func (b *BlobStore) Delete(path string) error {
	abs, err := b.Resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除文件失败: %w", err)
	}
	return nil
}
