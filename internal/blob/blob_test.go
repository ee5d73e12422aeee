package blob

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveGetDelete(t *testing.T) {
	s := NewStore(t.TempDir())
	ctx := context.Background()

	content := []byte{0xde, 0xad, 0xbe, 0xef}
	res, err := s.Save(ctx, 7, "image/png", bytes.NewReader(content), 1<<20)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if res.Ref != "7.png" {
		t.Fatalf("unexpected ref: %s", res.Ref)
	}
	if res.Bytes != int64(len(content)) {
		t.Fatalf("expected %d bytes, got %d", len(content), res.Bytes)
	}

	data, contentType, err := s.Get(res.Ref)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Fatalf("content mismatch: %v", data)
	}
	if contentType != "image/png" {
		t.Fatalf("unexpected content type: %s", contentType)
	}

	if err := s.Delete(res.Ref); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := s.Get(res.Ref); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(res.Ref); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestSaveCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "images")
	s := NewStore(root)
	if _, err := s.Save(context.Background(), 1, "image/gif", strings.NewReader("GIF89a"), 1<<20); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "1.gif")); err != nil {
		t.Fatalf("blob missing on disk: %v", err)
	}
}

func TestSaveRefusesOverwrite(t *testing.T) {
	s := NewStore(t.TempDir())
	ctx := context.Background()
	if _, err := s.Save(ctx, 3, "image/png", strings.NewReader("one"), 1<<20); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.Save(ctx, 3, "image/png", strings.NewReader("two"), 1<<20); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	data, _, err := s.Get("3.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != "one" {
		t.Fatalf("original blob clobbered: %q", data)
	}
}

func TestSaveTooLarge(t *testing.T) {
	s := NewStore(t.TempDir())
	_, err := s.Save(context.Background(), 9, "image/png", strings.NewReader("0123456789"), 5)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	entries, err := os.ReadDir(s.root)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, e := range entries {
		t.Fatalf("leftover file after failed save: %s", e.Name())
	}
}

func TestSaveSniffsDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 12, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	s := NewStore(t.TempDir())
	res, err := s.Save(context.Background(), 4, "image/png", &buf, 1<<20)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if res.Width != 12 || res.Height != 8 {
		t.Fatalf("expected 12x8, got %dx%d", res.Width, res.Height)
	}
}

func TestSaveNonImageBytes(t *testing.T) {
	s := NewStore(t.TempDir())
	res, err := s.Save(context.Background(), 5, "image/jpeg", strings.NewReader("not an image"), 1<<20)
	if err != nil {
		t.Fatalf("arbitrary bytes must be accepted: %v", err)
	}
	if res.Width != 0 || res.Height != 0 {
		t.Fatalf("expected zero dims, got %dx%d", res.Width, res.Height)
	}
	if res.Ref != "5.jpg" {
		t.Fatalf("unexpected ref: %s", res.Ref)
	}
}

func TestGetRejectsPathRefs(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, ref := range []string{"", "../etc/passwd", "a/b.png"} {
		if _, _, err := s.Get(ref); !errors.Is(err, ErrNotFound) {
			t.Fatalf("ref %q: expected ErrNotFound, got %v", ref, err)
		}
	}
}

func TestExtFor(t *testing.T) {
	cases := map[string]string{
		"image/jpeg":               ".jpg",
		"image/png":                ".png",
		"image/gif":                ".gif",
		"image/webp":               ".webp",
		"image/png; charset=utf-8": ".png",
		"application/octet-stream": ".bin",
		"":                         ".bin",
		"garbage":                  ".bin",
	}
	for in, expect := range cases {
		if got := extFor(in); got != expect {
			t.Fatalf("extFor(%q) = %q, expected %q", in, got, expect)
		}
	}
}
