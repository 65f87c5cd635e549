package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Bundle is a top-level record grouping several courses under one discounted
// price. Bundles own no children.
type Bundle struct {
	Key string

	Name       string
	CourseKeys []string
	Discount   decimal.Decimal
	// ImageFileName is the stored image reference; empty when the bundle has
	// no image.
	ImageFileName string

	fingerprint string
}

// Canonicalize formats and validates the bundle.
func (b *Bundle) Canonicalize() error {
	b.format()
	return b.validate()
}

func (b *Bundle) format() {
	b.Key = strings.TrimSpace(b.Key)
	b.Name = strings.TrimSpace(b.Name)

	for i, key := range b.CourseKeys {
		b.CourseKeys[i] = strings.TrimSpace(key)
	}
}

func (b *Bundle) validate() error {
	if b.Key == "" || b.Name == "" {
		return &ValidationError{Entity: "bundle", Key: b.Key, Reason: "key and name must be non-empty"}
	}

	if !b.Discount.IsPositive() {
		return &ValidationError{Entity: "bundle", Key: b.Key, Reason: "discount must be positive"}
	}

	return nil
}

// HashableBytes encodes, in order: name, course keys, discount, image
// reference.
func (b *Bundle) HashableBytes() []byte {
	var out []byte
	out = append(out, b.Name...)
	for _, key := range b.CourseKeys {
		out = append(out, key...)
	}
	out = appendLabeled(out, "discount", b.Discount.String())
	out = appendLabeled(out, "image_file_name", b.ImageFileName)
	return out
}

// Fingerprint returns the memoized content fingerprint.
func (b *Bundle) Fingerprint() string { return b.fingerprint }

// RefreshFingerprint recomputes the fingerprint from the current state.
func (b *Bundle) RefreshFingerprint() {
	b.fingerprint = Digest(b.HashableBytes())
}

// SyncKey returns the bundle's key within the bundles collection.
func (b *Bundle) SyncKey() string { return b.Key }

// CurrentImageFileName implements WithImage.
func (b *Bundle) CurrentImageFileName() (string, bool) {
	return b.ImageFileName, b.ImageFileName != ""
}

// CanonicalImageStem implements WithImage.
func (b *Bundle) CanonicalImageStem() string { return b.Key }

// ImageDir implements WithImage.
func (b *Bundle) ImageDir() string { return BundleImagesDir }

// ReplaceImageFileName implements WithImage.
func (b *Bundle) ReplaceImageFileName(name string) { b.ImageFileName = name }
