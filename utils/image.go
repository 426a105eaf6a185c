package utils

import (
	"fmt"
	"os"
	"strings"
)

// ImageResolver turns opaque image asset references into renderable
// CDN URLs. References look like "image-<assetId>-<dims>-<format>";
// anything else resolves to the placeholder so a broken reference never
// breaks the detail view.
type ImageResolver struct {
	BaseURL     string
	Placeholder string
}

// NewImageResolver builds a resolver from ASSET_BASE_URL and
// PLACEHOLDER_IMAGE_URL.
func NewImageResolver() *ImageResolver {
	base := os.Getenv("ASSET_BASE_URL")
	if base == "" {
		base = "https://cdn.example.com/images"
	}
	placeholder := os.Getenv("PLACEHOLDER_IMAGE_URL")
	if placeholder == "" {
		placeholder = base + "/placeholder.png"
	}
	return &ImageResolver{
		BaseURL:     strings.TrimSuffix(base, "/"),
		Placeholder: placeholder,
	}
}

// URLFor resolves an asset reference to an image URL, falling back to
// the placeholder for empty or malformed references.
func (ir *ImageResolver) URLFor(ref string) string {
	parts := strings.Split(ref, "-")
	if len(parts) != 4 || parts[0] != "image" {
		return ir.Placeholder
	}
	assetID, dims, format := parts[1], parts[2], parts[3]
	if assetID == "" || dims == "" || format == "" {
		return ir.Placeholder
	}
	return fmt.Sprintf("%s/%s-%s.%s", ir.BaseURL, assetID, dims, format)
}
