package blob

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/webp"
)

var ErrNotFound = errors.New("blob not found")
var ErrTooLarge = errors.New("upload too large")
var ErrExists = errors.New("blob already exists")

// Store handles filesystem operations for image blobs. Each blob is named by
// the catalog-assigned record id, so paths never collide for the life of the
// system. Every Get re-reads from disk; nothing is cached.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// SaveResult describes a blob written by Save.
type SaveResult struct {
	// Ref is the opaque file reference the catalog stores alongside the
	// record. It is a bare filename relative to the store root.
	Ref   string
	Bytes int64

	// Width and Height are sniffed from the content when it decodes as an
	// image. Zero when it does not; content is stored verbatim either way.
	Width  int
	Height int
}

// Save streams the content to disk under a name derived from id, writing to a
// temp file first and renaming into place so readers never see a partial
// blob. The root directory is created on first use.
func (s *Store) Save(ctx context.Context, id int64, contentType string, r io.Reader, maxBytes int64) (*SaveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return nil, err
	}

	ref := strconv.FormatInt(id, 10) + extFor(contentType)
	dst := filepath.Join(s.root, ref)
	if _, err := os.Stat(dst); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, ref)
	}

	tmp, err := os.CreateTemp(s.root, "upload-*")
	if err != nil {
		return nil, err
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	lim := &io.LimitedReader{R: r, N: maxBytes + 1}
	written, err := io.Copy(tmp, lim)
	if err != nil {
		return nil, err
	}
	if written > maxBytes {
		return nil, ErrTooLarge
	}

	width, height := sniffDims(tmp)

	if err := tmp.Close(); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return nil, err
	}

	return &SaveResult{Ref: ref, Bytes: written, Width: width, Height: height}, nil
}

// Get reads a blob back by reference, returning its bytes and a content type
// derived from the reference's extension (sniffed from the bytes when the
// extension is unknown).
func (s *Store) Get(ref string) ([]byte, string, error) {
	path, err := s.resolve(ref)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	if err != nil {
		return nil, "", err
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(ref)))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

// Delete removes a blob. A missing blob is an error; callers that treat
// delete as idempotent decide that for themselves.
func (s *Store) Delete(ref string) error {
	path, err := s.resolve(ref)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return err
}

func (s *Store) resolve(ref string) (string, error) {
	// Refs are bare filenames issued by Save; anything else never came
	// from this store.
	if ref == "" || ref != filepath.Base(ref) {
		return "", fmt.Errorf("%w: invalid ref %q", ErrNotFound, ref)
	}
	return filepath.Join(s.root, ref), nil
}

func (s *Store) IsWritable() error {
	testPath := filepath.Join(s.root, ".writetest")
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(testPath, []byte("ok"), 0o644); err != nil {
		return err
	}
	return os.Remove(testPath)
}

func extFor(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err == nil {
		switch mt {
		case "image/jpeg":
			return ".jpg"
		case "image/png":
			return ".png"
		case "image/gif":
			return ".gif"
		case "image/webp":
			return ".webp"
		}
		if exts, _ := mime.ExtensionsByType(mt); len(exts) > 0 {
			return exts[0]
		}
	}
	return ".bin"
}

// sniffDims decodes just the image header for width/height metadata. Content
// that does not decode is still accepted, it simply carries zero dims.
func sniffDims(f *os.File) (int, int) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, 0
	}
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
