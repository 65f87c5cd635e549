package models

// Image directory names for top-level collections. Course and question images
// live under the owning course's key instead.
const (
	BundleImagesDir = "bundles"
	IconImagesDir   = "icons"
)

// WithImage is implemented by image-bearing entities. The asset rename
// coordinator uses it to align the stored file name with the canonical name
// derived from the entity's own key or id.
type WithImage interface {
	// CurrentImageFileName returns the stored image file name, or false when
	// the entity has no image.
	CurrentImageFileName() (string, bool)
	// CanonicalImageStem returns the file stem the image should have.
	CanonicalImageStem() string
	// ImageDir returns the storage directory holding this entity's image.
	ImageDir() string
	// ReplaceImageFileName updates the stored reference after a rename.
	ReplaceImageFileName(name string)
}
