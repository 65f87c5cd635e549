// Package assets renames stored images to their canonical, entity-derived
// names so that the object name alone identifies the owning entity. Renames
// run after canonicalization and before fingerprinting, since the final image
// reference contributes to the fingerprint.
package assets
