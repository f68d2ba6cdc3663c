// Package loam exposes a directory of indicator documents through the loam
// document store. Markdown files carry the document in their frontmatter
// and free-form notes in their body; JSON and YAML files are the document.
package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"

	"github.com/aretw0/indicator/pkg/domain"
)

// Workspace adapts a Loam repository to ports.DocumentSource.
type Workspace struct {
	Repo  *loam.TypedRepository[DocumentMetadata]
	store core.Repository
}

// New creates a new Loam adapter.
func New(repo core.Repository) *Workspace {
	return &Workspace{
		Repo:  loam.NewTypedRepository[DocumentMetadata](repo),
		store: repo,
	}
}

// Open initializes a loam repository rooted at dir, without versioning.
func Open(dir string) (*Workspace, error) {
	repo, err := loam.Init(dir, loam.WithVersioning(false))
	if err != nil {
		return nil, fmt.Errorf("failed to init loam at %s: %w", dir, err)
	}
	return New(repo), nil
}

// Get retrieves a document by ID. Loam resolves "cpu" to cpu.md, cpu.json
// or cpu.yaml.
func (w *Workspace) Get(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := w.Repo.Get(ctx, trimExtension(id))
	if err != nil {
		return nil, fmt.Errorf("%w: loam get failed for %s: %v", domain.ErrTraceNotFound, id, err)
	}

	rawID := doc.Data.ID
	if rawID == "" {
		rawID = doc.ID
	}
	return toDocument(trimExtension(rawID), doc.Data)
}

// Notes returns the markdown body of a document, if any.
func (w *Workspace) Notes(ctx context.Context, id string) (string, error) {
	doc, err := w.Repo.Get(ctx, trimExtension(id))
	if err != nil {
		return "", fmt.Errorf("%w: loam get failed for %s: %v", domain.ErrTraceNotFound, id, err)
	}
	return strings.TrimSpace(doc.Content), nil
}

// Save writes doc as a markdown document with notes as its body. Numbers
// are written as YAML numbers so they read back with their type.
func (w *Workspace) Save(ctx context.Context, doc *domain.Document, notes string) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("document missing ID")
	}
	if len(doc.Traces) == 0 {
		return domain.ErrEmptyDocument
	}
	meta, err := toMetadata(DocumentMetadata{
		ID:     doc.ID,
		Layout: doc.Layout,
		Traces: doc.Traces,
	})
	if err != nil {
		return fmt.Errorf("loam save failed for %s: %w", doc.ID, err)
	}
	if err := w.store.Save(ctx, core.Document{ID: doc.ID, Content: notes, Metadata: meta}); err != nil {
		return fmt.Errorf("loam save failed for %s: %w", doc.ID, err)
	}
	return nil
}

// toMetadata flattens meta into plain JSON values. The typed repository
// keeps numbers as json.Number, which the frontmatter encoder quotes.
func toMetadata(meta DocumentMetadata) (core.Metadata, error) {
	data, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	var out core.Metadata
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List lists all document IDs in the repository.
func (w *Workspace) List(ctx context.Context) ([]string, error) {
	docs, err := w.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func toDocument(id string, meta DocumentMetadata) (*domain.Document, error) {
	traces := meta.Traces
	if len(traces) == 0 && len(meta.Trace) > 0 {
		traces = []map[string]any{meta.Trace}
	}
	if len(traces) == 0 {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrEmptyDocument)
	}

	doc := &domain.Document{ID: id, Traces: make([]map[string]any, len(traces))}
	if meta.Layout != nil {
		doc.Layout = domain.Normalize(meta.Layout).(map[string]any)
	}
	for i, trace := range traces {
		doc.Traces[i] = domain.Normalize(trace).(map[string]any)
	}
	return doc, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch sends the ID of every document that changes until ctx is done.
func (w *Workspace) Watch(ctx context.Context) (<-chan string, error) {
	events, err := w.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
