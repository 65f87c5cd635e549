// Package sync computes what a content batch changes relative to the last
// synced state. The previously synced key→fingerprint pairs per collection are
// the metadata; diffing the canonical, fingerprinted content against them
// yields a plan of entities to upsert and keys to delete.
package sync
