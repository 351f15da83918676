package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
)

// FSSource reads PDFs from a local directory.
type FSSource struct {
	root string
	kind constants.DocumentKind
	opts Options
}

func NewFSSource(root string, kind constants.DocumentKind, opts Options) *FSSource {
	return &FSSource{root: root, kind: kind, opts: opts}
}

func (s *FSSource) Location() string { return s.root }

// List walks root, keeps *.pdf files, skips hidden entries if requested,
// and descends into subdirectories only when Recursive is set.
func (s *FSSource) List(ctx context.Context) ([]Document, DirStats, error) {
	var stats DirStats
	if strings.TrimSpace(s.root) == "" {
		return nil, stats, errors.New("root path is required")
	}

	var docs []Document
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == s.root {
				return walkErr
			}
			stats.Failed++
			return nil // continue walking
		}
		if path == s.root {
			return nil
		}
		stats.Scanned++
		if s.opts.SkipHidden && IsHidden(path) {
			stats.Skipped++
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !s.opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !AllowedExt(filepath.Ext(path)) {
			stats.Skipped++
			return nil
		}
		var size int64
		if info, err := d.Info(); err == nil {
			size = info.Size()
		}
		stats.Matched++
		docs = append(docs, Document{
			Name:     d.Name(),
			Location: path,
			Kind:     s.kind,
			Size:     size,
		})
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("walk %s: %w", s.root, err)
	}

	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Location < docs[j].Location })
	return docs, stats, nil
}

func (s *FSSource) Load(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := os.ReadFile(doc.Location)
	if err != nil {
		return fmt.Errorf("read %s: %w", doc.Location, err)
	}
	setContent(doc, b)
	return nil
}

// EnsureDirs creates any missing local input folders. s3:// locations are left alone.
func EnsureDirs(locations ...string) error {
	for _, loc := range locations {
		if loc == "" || IsS3URI(loc) {
			continue
		}
		if err := os.MkdirAll(loc, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", loc, err)
		}
	}
	return nil
}
