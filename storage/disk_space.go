package storage

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// AvailableBytes reports the free space on the volume hosting the storage
// root, as seen by an unprivileged caller.
func (b *BlobStore) AvailableBytes() (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(b.root, &st); err != nil {
		return 0, fmt.Errorf("查询磁盘剩余空间失败: %w", err)
	}
	return st.Bavail * uint64(st.Bsize), nil
}
