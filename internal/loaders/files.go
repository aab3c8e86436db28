package loaders

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/citewise-labs/citewise-cli/internal/core/domain"
)

// ReadFile reads one file from disk into a Document, inferring the
// file type from the extension.
func ReadFile(path string) (domain.Document, error) {
	name := filepath.Base(path)
	fileType, ok := domain.DetectFileType(name)
	if !ok {
		return domain.Document{}, fmt.Errorf("%s: %w", name, domain.ErrUnsupportedType)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return domain.Document{FileName: name, Content: content, Type: fileType}, nil
}

// ReadFiles reads a batch of files from disk. The first unreadable
// or unsupported file fails the whole batch; partial uploads are the
// ingestion pipeline's job to report, missing files are the caller's
// mistake.
func ReadFiles(paths []string) ([]domain.Document, error) {
	docs := make([]domain.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
