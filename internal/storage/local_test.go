package storage

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

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	root := t.TempDir()
	l, err := NewLocal(filepath.Join(root, "assets"), filepath.Join(root, "output"), zap.NewNop())
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	return l
}

func flatImage(width, height int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	return img
}

func writeAsset(t *testing.T, l *Local, key, name string) {
	t.Helper()
	dir := filepath.Join(l.assetsDir, key)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := imaging.Save(flatImage(64, 48), filepath.Join(dir, name)); err != nil {
		t.Fatalf("failed to write asset %s: %v", name, err)
	}
}

func TestFindAsset(t *testing.T) {
	l := newTestLocal(t)
	writeAsset(t, l, "trail_jacket", "photo.png")

	img, err := l.FindAsset(context.Background(), "trail_jacket")
	if err != nil {
		t.Fatalf("FindAsset() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("asset dimensions = %dx%d", b.Dx(), b.Dy())
	}
}

func TestFindAssetMissing(t *testing.T) {
	l := newTestLocal(t)

	if _, err := l.FindAsset(context.Background(), "nope"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("FindAsset() error = %v, want ErrAssetNotFound", err)
	}

	// A key directory with no image files is also a miss.
	if err := os.MkdirAll(filepath.Join(l.assetsDir, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := l.FindAsset(context.Background(), "empty"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("FindAsset() on empty dir error = %v, want ErrAssetNotFound", err)
	}
}

func TestFindAssetPrefersJPEGOverPNG(t *testing.T) {
	l := newTestLocal(t)
	// "a.png" sorts before "z.jpg", but the extension order wins.
	writeAsset(t, l, "pack", "a.png")
	writeAsset(t, l, "pack", "z.jpg")

	img, err := l.FindAsset(context.Background(), "pack")
	if err != nil {
		t.Fatalf("FindAsset() error = %v", err)
	}
	if img == nil {
		t.Fatal("FindAsset() returned nil image")
	}

	// Removing the jpg leaves the png as the next candidate.
	if err := os.Remove(filepath.Join(l.assetsDir, "pack", "z.jpg")); err != nil {
		t.Fatal(err)
	}
	if _, err := l.FindAsset(context.Background(), "pack"); err != nil {
		t.Errorf("FindAsset() after jpg removal error = %v", err)
	}
}

func TestStoreAndList(t *testing.T) {
	l := newTestLocal(t)
	ctx := context.Background()

	keys := []string{
		"summer_launch/trail_jacket/1x1.jpg",
		"summer_launch/trail_jacket/9x16.jpg",
		"summer_launch/summit_pack/16x9.jpg",
		"other_campaign/summit_pack/1x1.jpg",
	}
	for _, key := range keys {
		location, err := l.Store(ctx, key, flatImage(32, 32))
		if err != nil {
			t.Fatalf("Store(%q) error = %v", key, err)
		}
		if !strings.HasSuffix(location, filepath.FromSlash(key)) {
			t.Errorf("Store(%q) location = %q", key, location)
		}
		if _, err := os.Stat(location); err != nil {
			t.Errorf("stored file missing: %v", err)
		}
	}

	files, err := l.List(ctx, "summer_launch")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("List() = %v, want 3 files", files)
	}
	for _, f := range files {
		if strings.Contains(f, "other_campaign") {
			t.Errorf("List() leaked another campaign's output: %s", f)
		}
	}
	if !sortedStrings(files) {
		t.Errorf("List() not sorted: %v", files)
	}
}

func TestListUnknownCampaign(t *testing.T) {
	l := newTestLocal(t)

	files, err := l.List(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("List() = %v, want empty", files)
	}
}

func TestSaveAssetRoundTrip(t *testing.T) {
	l := newTestLocal(t)
	ctx := context.Background()

	var buf bytes.Buffer
	if err := png.Encode(&buf, flatImage(40, 40)); err != nil {
		t.Fatal(err)
	}

	location, err := l.SaveAsset(ctx, "eco_tee", "tee.png", &buf)
	if err != nil {
		t.Fatalf("SaveAsset() error = %v", err)
	}
	if filepath.Base(location) != "tee.png" {
		t.Errorf("SaveAsset() location = %q", location)
	}

	img, err := l.FindAsset(ctx, "eco_tee")
	if err != nil {
		t.Fatalf("FindAsset() after upload error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Errorf("uploaded asset dimensions = %dx%d", b.Dx(), b.Dy())
	}
}

func TestSaveAssetStripsPathComponents(t *testing.T) {
	l := newTestLocal(t)

	var buf bytes.Buffer
	if err := png.Encode(&buf, flatImage(8, 8)); err != nil {
		t.Fatal(err)
	}

	location, err := l.SaveAsset(context.Background(), "key", "../../escape.png", &buf)
	if err != nil {
		t.Fatalf("SaveAsset() error = %v", err)
	}
	if filepath.Base(location) != "escape.png" || strings.Contains(location, "..") {
		t.Errorf("SaveAsset() location = %q, traversal not stripped", location)
	}
	within := filepath.Join(l.assetsDir, "key", "escape.png")
	if location != within {
		t.Errorf("SaveAsset() location = %q, want %q", location, within)
	}
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}
