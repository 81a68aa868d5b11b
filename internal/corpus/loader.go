package corpus

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var errNotUTF8 = errors.New("file is not valid UTF-8")

// Load reads every category subdirectory of root into a fresh Corpus.
//
// Missing directories and unreadable files are logged and skipped; Load never
// fails. A missing root yields an empty corpus and the caller decides how to
// report "not ready".
func Load(root string, categories []Category, logger *slog.Logger) *Corpus {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		logger.Warn("knowledge base not found", "root", root, "error", err)
		return Empty()
	}

	var (
		documents []Document
		present   []Category
	)

	for _, cat := range categories {
		dir := filepath.Join(root, string(cat))
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logger.Warn("cannot read category directory", "category", cat, "path", dir, "error", err)
			}
			continue
		}
		present = append(present, cat)

		for _, entry := range entries {
			if !isCandidate(entry) {
				continue
			}
			filePath := filepath.Join(dir, entry.Name())
			text, err := readText(filePath)
			if err != nil {
				logger.Warn("cannot read file", "category", cat, "path", filePath, "error", err)
				continue
			}
			if strings.TrimSpace(text) == "" {
				continue
			}
			documents = append(documents, NewDocument(cat, entry.Name(), filePath, text))
		}
	}

	c := New(documents, present...)
	logger.Info("knowledge base loaded", "root", root, "documents", c.Len())
	return c
}

// DocumentExt is the only file extension loaded from category directories.
const DocumentExt = ".txt"

func isCandidate(entry fs.DirEntry) bool {
	name := entry.Name()
	if strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), DocumentExt) {
		return false
	}
	return entry.Type().IsRegular()
}

func readText(filePath string) (string, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", errNotUTF8
	}
	return string(raw), nil
}
