// =============================================================================
// PyPSA to H2RES Export Converter - File Utilities
// =============================================================================
//
// Shared filesystem helpers used by the converters and the CLI commands.
// Output files are written atomically: the data goes to a uniquely named
// temporary file in the target directory first, then the file is renamed
// into place. A converter that dies halfway never leaves a truncated XML
// document behind.
//
// =============================================================================

package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EnsureDir creates the directory (and any missing parents) if it does not
// already exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists reports whether the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// WriteFileAtomic writes data to path, creating parent directories as
// needed. The data is staged in a temporary file named with a random UUID
// suffix and renamed into place once fully written.
func WriteFileAtomic(path string, data []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	tmpPath := fmt.Sprintf("%s.tmp-%s", path, uuid.New().String())
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Best effort: do not leave the temporary file behind.
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s to %s: %w", tmpPath, path, err)
	}
	return nil
}
