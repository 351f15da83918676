package ingest

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/joseph-ayodele/foreclosure-parser/constants"
)

// AWSOptions configures the S3 client. Empty keys fall back to the default credential chain.
type AWSOptions struct {
	Region    string
	AccessKey string
	SecretKey string
}

// S3API is the subset of *s3.Client the source needs.
type S3API interface {
	s3.ListObjectsV2APIClient
	manager.DownloadAPIClient
}

// S3Source reads PDFs under an s3://bucket/prefix location.
type S3Source struct {
	client   S3API
	location string
	bucket   string
	prefix   string
	kind     constants.DocumentKind
	opts     Options
}

func NewS3Source(ctx context.Context, location string, kind constants.DocumentKind, opts Options) (*S3Source, error) {
	if opts.AWS.Region == "" {
		return nil, fmt.Errorf("AWS region not set")
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.AWS.Region)}
	if opts.AWS.AccessKey != "" && opts.AWS.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AWS.AccessKey, opts.AWS.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3SourceWithClient(s3.NewFromConfig(awsCfg), location, kind, opts)
}

// NewS3SourceWithClient builds a source around an existing client.
func NewS3SourceWithClient(client S3API, location string, kind constants.DocumentKind, opts Options) (*S3Source, error) {
	bucket, prefix, err := ParseS3URI(location)
	if err != nil {
		return nil, err
	}
	return &S3Source{
		client:   client,
		location: location,
		bucket:   bucket,
		prefix:   prefix,
		kind:     kind,
		opts:     opts,
	}, nil
}

func (s *S3Source) Location() string { return s.location }

func (s *S3Source) List(ctx context.Context) ([]Document, DirStats, error) {
	var stats DirStats
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	}
	if !s.opts.Recursive {
		input.Delimiter = aws.String("/")
	}

	var docs []Document
	p := s3.NewListObjectsV2Paginator(s.client, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, stats, fmt.Errorf("s3 list %s: %w", s.location, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			stats.Scanned++
			name := path.Base(key)
			if strings.HasSuffix(key, "/") || (s.opts.SkipHidden && strings.HasPrefix(name, ".")) || !AllowedExt(path.Ext(key)) {
				stats.Skipped++
				continue
			}
			stats.Matched++
			docs = append(docs, Document{
				Name:     name,
				Location: "s3://" + s.bucket + "/" + key,
				Kind:     s.kind,
				Size:     aws.ToInt64(obj.Size),
			})
		}
	}
	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Location < docs[j].Location })
	return docs, stats, nil
}

func (s *S3Source) Load(ctx context.Context, doc *Document) error {
	bucket, key, err := ParseS3URI(doc.Location)
	if err != nil {
		return err
	}
	ctxGet, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	buf := manager.NewWriteAtBuffer(make([]byte, 0, doc.Size))
	downloader := manager.NewDownloader(s.client)
	if _, err := downloader.Download(ctxGet, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("s3 get %s: %w", doc.Location, err)
	}
	setContent(doc, buf.Bytes())
	return nil
}

// ParseS3URI splits s3://bucket/prefix. A folder prefix gets a trailing "/";
// a .pdf object key is returned as is.
func ParseS3URI(location string) (bucket, prefix string, err error) {
	u, err := url.Parse(strings.TrimSpace(location))
	if err != nil {
		return "", "", fmt.Errorf("parse %q: %w", location, err)
	}
	if !strings.EqualFold(u.Scheme, "s3") || u.Host == "" {
		return "", "", fmt.Errorf("not an s3 uri: %q", location)
	}
	prefix = strings.TrimPrefix(u.Path, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") && !AllowedExt(path.Ext(prefix)) {
		prefix += "/"
	}
	return u.Host, prefix, nil
}
