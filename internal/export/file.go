package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"

	"kindleshelf/internal/fileutil"
	"kindleshelf/internal/textutil"
)

// ErrClipboardUnavailable is returned when no system clipboard is reachable.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// FileName returns kindle_books_YYYY-MM-DD.csv, or the _merged_ variant.
func FileName(merged bool, now time.Time) string {
	prefix := "kindle_books_"
	if merged {
		prefix = "kindle_books_merged_"
	}
	return prefix + now.Format("2006-01-02") + ".csv"
}

// WriteFile writes rows to dir/name and returns the full path.
func WriteFile(dir, name string, rows []Row, opts Options) (string, error) {
	data, err := Encode(rows, opts)
	if err != nil {
		return "", err
	}
	name = textutil.SanitizeFileName(name)
	if name == "" {
		return "", errors.New("export file name is empty")
	}
	path := filepath.Join(dir, name)
	if err := fileutil.WriteFileAtomic(path, []byte(data), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// CopyToClipboard places text on the system clipboard.
func CopyToClipboard(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	return nil
}
