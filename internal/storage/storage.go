package storage

import (
	"context"
	"errors"
	"image"
	"io"
)

// ErrAssetNotFound is returned when no image exists under an asset key.
var ErrAssetNotFound = errors.New("asset not found")

// Storage is the read/write contract the campaign workflow needs: asset
// lookup by key, creative persistence by path key, and per-campaign listing.
type Storage interface {
	// FindAsset returns the first image stored under the key, searching file
	// extensions in a stable order, or ErrAssetNotFound.
	FindAsset(ctx context.Context, key string) (image.Image, error)

	// Store persists a finished creative at the path key (for example
	// "campaign/product_slug/1x1.jpg") and returns its location string.
	Store(ctx context.Context, pathKey string, img image.Image) (string, error)

	// List returns the location strings of every output stored for a campaign.
	List(ctx context.Context, campaignID string) ([]string, error)

	// SaveAsset stores a user-provided asset file under the key so later
	// campaigns can reuse it, returning its location string.
	SaveAsset(ctx context.Context, key, filename string, r io.Reader) (string, error)
}
