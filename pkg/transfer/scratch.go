// Package transfer moves object bytes between clients and the storage
// gateway through scratch files on local disk.
package transfer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Gateway is the subset of the storage gateway used by transfers.
type Gateway interface {
	UploadFile(ctx context.Context, bucket, key, path string) error
	DownloadFile(ctx context.Context, bucket, key, path string) error
}

const scratchSubdir = "s3console"

// Scratch is a shared scratch directory for in-flight transfers. Every
// scratch filename embeds a fresh random identifier so concurrent
// transfers of the same object never collide.
type Scratch struct {
	dir string
	log *slog.Logger
}

// NewScratch creates (if needed) a dedicated scratch directory under dir.
// The subdirectory keeps the janitor's sweep away from files the console
// does not own.
func NewScratch(dir string) (*Scratch, error) {
	full := filepath.Join(dir, scratchSubdir)
	if err := os.MkdirAll(full, 0o700); err != nil {
		return nil, fmt.Errorf("NewScratch: error creating %s: %w", full, err)
	}
	return &Scratch{
		dir: full,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// SetLogger sets the logger
func (s *Scratch) SetLogger(log *slog.Logger) {
	s.log = log
}

// Dir returns the scratch directory path.
func (s *Scratch) Dir() string {
	return s.dir
}

// Path returns a fresh scratch path for the given display name.
func (s *Scratch) Path(name string) string {
	return filepath.Join(s.dir, uuid.NewString()+"_"+SanitizeFilename(name))
}

// SanitizeFilename reduces a client-supplied filename to a safe basename:
// path separators and parent references are stripped, whitespace is
// collapsed to underscores. An empty result becomes "unnamed".
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimSpace(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unnamed"
	}
	return out
}

// Upload persists src to a scratch file, hands it to the gateway put, and
// removes the scratch file whether or not the put succeeded.
func (s *Scratch) Upload(ctx context.Context, gw Gateway, bucket, key string, src io.Reader) error {
	path := s.Path(lastSegment(key))
	defer os.Remove(path) //nolint:errcheck

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("Upload: error creating scratch file: %w", err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("Upload: error buffering upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("Upload: error closing scratch file: %w", err)
	}

	if err := gw.UploadFile(ctx, bucket, key, path); err != nil {
		return fmt.Errorf("Upload: %w", err)
	}

	s.log.Debug("upload completed",
		slog.String("bucket", bucket), slog.String("key", key))
	return nil
}

// Download fetches bucket/key into a scratch file and returns a reader
// over it that removes the file when closed. The scratch file's lifetime
// is tied to the response stream, not to a timer.
func (s *Scratch) Download(ctx context.Context, gw Gateway, bucket, key string) (io.ReadCloser, int64, error) {
	path := s.Path(lastSegment(key))

	if err := gw.DownloadFile(ctx, bucket, key, path); err != nil {
		os.Remove(path) //nolint:errcheck
		return nil, 0, fmt.Errorf("Download: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		os.Remove(path) //nolint:errcheck
		return nil, 0, fmt.Errorf("Download: error opening scratch file: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()      //nolint:errcheck
		os.Remove(path) //nolint:errcheck
		return nil, 0, fmt.Errorf("Download: error of Stat: %w", err)
	}

	s.log.Debug("download staged",
		slog.String("bucket", bucket), slog.String("key", key),
		slog.Int64("size", fi.Size()))
	return &deleteOnClose{File: f, path: path}, fi.Size(), nil
}

// Fetch downloads bucket/key into a scratch file and returns its path
// plus size. The caller owns the file and must remove it. Used by preview,
// which needs a local copy rather than a stream.
func (s *Scratch) Fetch(ctx context.Context, gw Gateway, bucket, key string) (string, int64, error) {
	path := s.Path(lastSegment(key))

	if err := gw.DownloadFile(ctx, bucket, key, path); err != nil {
		os.Remove(path) //nolint:errcheck
		return "", 0, fmt.Errorf("Fetch: %w", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		os.Remove(path) //nolint:errcheck
		return "", 0, fmt.Errorf("Fetch: error of Stat: %w", err)
	}
	return path, fi.Size(), nil
}

// deleteOnClose removes its backing file once the stream is closed.
type deleteOnClose struct {
	*os.File
	path string
}

func (d *deleteOnClose) Close() error {
	err := d.File.Close()
	if rmErr := os.Remove(d.path); rmErr != nil && err == nil {
		err = rmErr
	}
	return err
}

func lastSegment(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[i+1:]
	}
	return key
}
