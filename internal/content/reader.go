package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/types"
)

// Extension is the file extension of source documents
const Extension = ".md"

// ReadSources reads <root>/<category dir>/*.md for every category.
// Each group is in lexical filename order. A missing category directory is an empty group.
// A file that cannot be read is reported as a MalformedSourceError while the others are kept.
func ReadSources(ctx context.Context, root string) (Sources, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open content directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path %s is not a directory", root)
	}

	sources := make(Sources, len(types.Categories))
	var mu sync.Mutex
	var readErrs []error

	g, gCtx := errgroup.WithContext(ctx)
	for _, category := range types.Categories {
		g.Go(func() error {
			docs, errs, err := readCategory(gCtx, filepath.Join(root, category.Dir()), category)
			if err != nil {
				return fmt.Errorf("failed to read %s documents: %w", category, err)
			}
			mu.Lock()
			sources[category] = docs
			readErrs = append(readErrs, errs...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, errors.Join(readErrs...)
}

func readCategory(ctx context.Context, dir string, category types.Category) ([]Document, []error, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Document{}, nil, nil
		}
		return nil, nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	docs := make([]Document, 0, len(names))
	var errs []error
	for _, fileName := range names {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		name := strings.TrimSuffix(fileName, Extension)
		raw, err := os.ReadFile(filepath.Join(dir, fileName))
		if err != nil {
			errs = append(errs, &MalformedSourceError{
				Name:     name,
				Category: category,
				Message:  "failed to read file",
				Cause:    err,
			})
			continue
		}
		docs = append(docs, Document{Name: name, Raw: raw})
	}
	return docs, errs, nil
}

// Loader produces the catalog from wherever the sources live
type Loader interface {
	Load(ctx context.Context) (types.Catalog, error)
}

// DirLoader loads the catalog from a content directory on disk
type DirLoader struct {
	Root string
}

// Load reads and parses every source document under Root.
// Per-document problems are returned joined alongside the catalog of good documents.
func (l DirLoader) Load(ctx context.Context) (types.Catalog, error) {
	sources, readErr := ReadSources(ctx, l.Root)
	if sources == nil {
		return types.Catalog{}, readErr
	}
	catalog, loadErr := LoadCatalog(sources)
	return catalog, errors.Join(readErr, loadErr)
}

// StaticLoader serves a fixed set of in-memory sources
type StaticLoader struct {
	Sources Sources
}

// Load parses the in-memory sources
func (l StaticLoader) Load(_ context.Context) (types.Catalog, error) {
	return LoadCatalog(l.Sources)
}

// IsFatal reports whether a load error prevented the catalog from being built at all,
// as opposed to per-document problems that only dropped some documents.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return !isDocumentError(err)
	}
	for _, e := range joined.Unwrap() {
		if IsFatal(e) {
			return true
		}
	}
	return false
}

func isDocumentError(err error) bool {
	var malformed *MalformedSourceError
	var dup *DuplicateSectionError
	return errors.As(err, &malformed) || errors.As(err, &dup)
}
