package budget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

// BudgetRepo gives serialized access to the persisted budget document.
type BudgetRepo interface {
	// View runs fn with the current document. Mutations made by fn are not
	// persisted.
	View(ctx context.Context, fn func(doc *Document) error) error
	// Update runs fn on the current document and persists the result. If fn
	// returns an error, nothing is persisted.
	Update(ctx context.Context, fn func(doc *Document) error) error
}

// FileBudgetRepo stores the document as a single JSON file. One mutex
// serializes every load-mutate-persist sequence, so concurrent callers
// never observe a half-applied update.
type FileBudgetRepo struct {
	mu   sync.Mutex
	path string
}

func NewFileBudgetRepo(path string) (*FileBudgetRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	repo := &FileBudgetRepo{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := repo.persist(NewDocument()); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

func (r *FileBudgetRepo) View(ctx context.Context, fn func(doc *Document) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.load())
}

func (r *FileBudgetRepo) Update(ctx context.Context, fn func(doc *Document) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc := r.load()
	if err := fn(doc); err != nil {
		return err
	}
	return r.persist(doc)
}

// load reads the document from disk. A missing file, invalid JSON, or a
// malformed months container intentionally resets to an empty document
// instead of failing: the store prefers staying available over refusing to
// serve a corrupt file.
func (r *FileBudgetRepo) load() *Document {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warnf("failed to read budget file %s, starting empty: %v", r.path, err)
		}
		return NewDocument()
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Warnf("budget file %s is not valid JSON, starting empty: %v", r.path, err)
		return NewDocument()
	}
	if doc.Months == nil {
		doc.Months = map[string]MonthRecord{}
	}
	return &doc
}

// persist writes the document to a temporary file and atomically renames it
// over the canonical path, so the file on disk is always a complete JSON
// document, even if the process crashes mid-write.
func (r *FileBudgetRepo) persist(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode budget document: %w", err)
	}
	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write budget file: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("failed to replace budget file: %w", err)
	}
	return nil
}
