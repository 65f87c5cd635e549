// Package content loads authored course, bundle and icon files, canonicalizes
// them, renames their stored images and syncs the result to the content store.
// It exposes the pipeline over HTTP and to the CLI commands.
package content
