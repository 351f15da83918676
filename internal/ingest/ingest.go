package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
)

// Document is one input PDF. Content and SHA256 are filled by Source.Load.
type Document struct {
	Name     string // base filename
	Location string // filesystem path or s3://bucket/key
	Kind     constants.DocumentKind
	Size     int64
	Content  []byte
	SHA256   string
}

// DirStats summarizes a folder listing.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
	Failed  uint32
}

// Source enumerates the documents of one folder in lexical order.
type Source interface {
	// Location is the folder path or URI the source reads from.
	Location() string
	List(ctx context.Context) ([]Document, DirStats, error)
	Load(ctx context.Context, doc *Document) error
}

// Options controls how folders are listed.
type Options struct {
	Recursive  bool
	SkipHidden bool
	AWS        AWSOptions
}

// Open returns an S3Source for s3:// locations and an FSSource otherwise.
func Open(ctx context.Context, location string, kind constants.DocumentKind, opts Options) (Source, error) {
	if IsS3URI(location) {
		return NewS3Source(ctx, location, kind, opts)
	}
	return NewFSSource(location, kind, opts), nil
}

func setContent(doc *Document, b []byte) {
	sum := sha256.Sum256(b)
	doc.Content = b
	doc.Size = int64(len(b))
	doc.SHA256 = hex.EncodeToString(sum[:])
}

// IsS3URI reports whether location names an S3 prefix.
func IsS3URI(location string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(location)), "s3://")
}
