package models

import (
	"strings"

	"github.com/shopspring/decimal"

	"content-sync/core/textfmt"
)

// Icon is a top-level record for a purchasable profile icon. Icons own no
// children and always carry an image.
type Icon struct {
	Key string

	IsInitial   bool
	Description string
	Price       *decimal.Decimal
	// ImageFileName is the stored image reference. Unlike other entities it is
	// required.
	ImageFileName string

	fingerprint string
}

// Canonicalize formats and validates the icon.
func (i *Icon) Canonicalize() error {
	i.format()
	return i.validate()
}

func (i *Icon) format() {
	i.Key = strings.TrimSpace(i.Key)
	i.Description = textfmt.Format(i.Description)
}

func (i *Icon) validate() error {
	if i.Key == "" {
		return &ValidationError{Entity: "icon", Key: i.Key, Reason: "key must be non-empty"}
	}

	if i.ImageFileName == "" {
		return &ValidationError{Entity: "icon", Key: i.Key, Reason: "image file name is required"}
	}

	if i.Price != nil && !i.Price.IsPositive() {
		return &ValidationError{Entity: "icon", Key: i.Key, Reason: "price must be positive"}
	}

	return nil
}

// HashableBytes encodes, in order: key, initial flag, description, price,
// image reference.
func (i *Icon) HashableBytes() []byte {
	var out []byte
	out = append(out, i.Key...)
	if i.IsInitial {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	out = appendLabeled(out, "description", i.Description)
	if i.Price != nil {
		out = appendLabeled(out, "price", i.Price.String())
	}
	out = append(out, i.ImageFileName...)
	return out
}

// Fingerprint returns the memoized content fingerprint.
func (i *Icon) Fingerprint() string { return i.fingerprint }

// RefreshFingerprint recomputes the fingerprint from the current state.
func (i *Icon) RefreshFingerprint() {
	i.fingerprint = Digest(i.HashableBytes())
}

// SyncKey returns the icon's key within the icons collection.
func (i *Icon) SyncKey() string { return i.Key }

// CurrentImageFileName implements WithImage.
func (i *Icon) CurrentImageFileName() (string, bool) {
	return i.ImageFileName, i.ImageFileName != ""
}

// CanonicalImageStem implements WithImage.
func (i *Icon) CanonicalImageStem() string { return i.Key }

// ImageDir implements WithImage.
func (i *Icon) ImageDir() string { return IconImagesDir }

// ReplaceImageFileName implements WithImage.
func (i *Icon) ReplaceImageFileName(name string) { i.ImageFileName = name }
