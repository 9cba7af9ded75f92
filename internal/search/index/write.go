package index

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// DefaultLockTimeout bounds how long WriteSnapshot waits for another writer.
const DefaultLockTimeout = 10 * time.Second

// WriteSnapshot validates raw as an index and installs it at path.
//
// The file is replaced atomically through a temp file and rename, and
// concurrent writers are serialised by a lock file next to path. An
// identical existing snapshot is left untouched.
func WriteSnapshot(path string, raw []byte, lockTimeout time.Duration) (*Snapshot, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}
	pages, err := decodeBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("refusing to write invalid index: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create snapshot dir %s: %w", dir, err)
	}

	unlock, err := acquireSnapshotLock(path+".lock", lockTimeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	snap := &Snapshot{Path: path, Pages: len(pages), TextHash: TextHash(raw)}
	if old, err := os.ReadFile(path); err == nil && TextHash(old) == snap.TextHash {
		return snap, nil
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("cannot create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return nil, fmt.Errorf("cannot write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return nil, err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return nil, fmt.Errorf("cannot install snapshot %s: %w", path, err)
	}

	snap.Changed = true
	return snap, nil
}

// acquireSnapshotLock obtains the lock at lockPath, polling until timeout.
func acquireSnapshotLock(lockPath string, timeout time.Duration) (func(), error) {
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return func() {}, fmt.Errorf("cannot acquire snapshot lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return func() {}, fmt.Errorf("another snapshot write is in progress (lock: %s)", lockPath)
		}
		time.Sleep(200 * time.Millisecond)
	}
}
