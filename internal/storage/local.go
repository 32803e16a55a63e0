package storage

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	_ "golang.org/x/image/webp"
)

// assetExtensions is the stable search order for asset lookup.
var assetExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// Local stores assets and creatives on the local filesystem: assets under
// <assetsDir>/<key>/, campaign outputs under <outputDir>/<campaign>/....
type Local struct {
	assetsDir string
	outputDir string
	log       *zap.Logger
}

func NewLocal(assetsDir, outputDir string, log *zap.Logger) (*Local, error) {
	for _, dir := range []string{assetsDir, outputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage dir %s: %w", dir, err)
		}
	}
	return &Local{assetsDir: assetsDir, outputDir: outputDir, log: log}, nil
}

func (l *Local) FindAsset(_ context.Context, key string) (image.Image, error) {
	dir := filepath.Join(l.assetsDir, key)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, key)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, ext := range assetExtensions {
		for _, name := range names {
			if strings.EqualFold(filepath.Ext(name), ext) {
				img, err := imaging.Open(filepath.Join(dir, name))
				if err != nil {
					return nil, fmt.Errorf("failed to decode asset %s/%s: %w", key, name, err)
				}
				l.log.Debug("asset found", zap.String("key", key), zap.String("file", name))
				return img, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, key)
}

func (l *Local) Store(_ context.Context, pathKey string, img image.Image) (string, error) {
	path := filepath.Join(l.outputDir, filepath.FromSlash(pathKey))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		return "", fmt.Errorf("failed to save creative %s: %w", pathKey, err)
	}
	return path, nil
}

func (l *Local) List(_ context.Context, campaignID string) ([]string, error) {
	root := filepath.Join(l.outputDir, campaignID)
	if _, err := os.Stat(root); err != nil {
		return []string{}, nil
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".jpg") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list outputs for %s: %w", campaignID, err)
	}
	sort.Strings(files)
	return files, nil
}

func (l *Local) SaveAsset(_ context.Context, key, filename string, r io.Reader) (string, error) {
	dir := filepath.Join(l.assetsDir, key)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create asset dir: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(filename))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create asset file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write asset file: %w", err)
	}
	return path, nil
}
