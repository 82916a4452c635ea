package luagen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer persists a rendered script. The pipeline takes a Writer so dry-run
// and tests can swap out the filesystem.
type Writer interface {
	WriteScript(path string, content string) error
}

// FileWriter writes the script to disk. The write goes through a temp file in
// the target directory plus a rename, so a failed run never leaves a truncated
// config behind.
type FileWriter struct {
	// Mode is the file mode for the output. Zero means 0o644.
	Mode os.FileMode
}

func (w *FileWriter) WriteScript(path string, content string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("write script: empty path")
	}

	mode := w.Mode
	if mode == 0 {
		mode = 0o644
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write script: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write script: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write script: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write script: %w", err)
	}
	return nil
}

// DiscardWriter drops the script. It records the last path/content so tests
// and dry-run previews can inspect what would have been written.
type DiscardWriter struct {
	LastPath    string
	LastContent string
}

func (w *DiscardWriter) WriteScript(path string, content string) error {
	w.LastPath = path
	w.LastContent = content
	return nil
}
