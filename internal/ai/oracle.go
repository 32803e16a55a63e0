package ai

import "context"

// TextOracle is an opaque text-completion model reached over the network.
type TextOracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageOracle generates a raw image for a prompt at one of the supported
// aspect ratios.
type ImageOracle interface {
	GenerateImage(ctx context.Context, prompt, aspectRatio string) ([]byte, error)
}
