package encoding

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir ensures the parent directory of a file path exists.
// Uses 0700 permissions since snapshots carry secret values.
func EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return nil
}

// WriteFileSecure writes data with 0600 permissions (owner read/write only),
// creating parent directories first. The data lands in a temp file that is
// renamed over the target so a failed write leaves the old file intact.
func WriteFileSecure(path string, data []byte) error {
	if err := EnsureParentDir(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	if err := os.Chmod(tmpName, 0600); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("failed to replace file %s: %w", path, err)
	}

	return nil
}
