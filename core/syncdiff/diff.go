package syncdiff

import "fmt"

// Keyed is implemented by canonical, fingerprinted entities that can be
// diffed against previously recorded sync metadata.
type Keyed[K comparable] interface {
	// SyncKey returns the entity's unique key within its collection.
	SyncKey() K
	// Fingerprint returns the entity's content fingerprint.
	Fingerprint() string
}

// Result holds the two output sets of a diff for one collection.
type Result[K comparable, E Keyed[K]] struct {
	// ForSync contains entities that are new or whose fingerprint changed.
	ForSync []E
	// ForDeletion contains keys recorded in the metadata but absent from the
	// current content.
	ForDeletion []K
}

// DuplicateKeyError reports two entities of the same collection canonicalizing
// to the same key. The diff cannot distinguish them, so this is a batch-level
// error rather than a per-entity one.
type DuplicateKeyError struct {
	Collection string
	Key        any
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %v in collection %s", e.Key, e.Collection)
}

// Diff compares the current entities of one collection against the previously
// recorded key→fingerprint metadata and computes the minimal sync and delete
// sets. Entities present in both with an identical fingerprint appear in
// neither set. The inputs are not mutated; re-running with identical inputs
// yields the same sets.
func Diff[K comparable, E Keyed[K]](collection string, current []E, previous map[K]string) (*Result[K, E], error) {
	seen := make(map[K]struct{}, len(current))
	result := &Result[K, E]{}

	for _, entity := range current {
		key := entity.SyncKey()
		if _, dup := seen[key]; dup {
			return nil, &DuplicateKeyError{Collection: collection, Key: key}
		}
		seen[key] = struct{}{}

		if fp, ok := previous[key]; !ok || fp != entity.Fingerprint() {
			result.ForSync = append(result.ForSync, entity)
		}
	}

	for key := range previous {
		if _, ok := seen[key]; !ok {
			result.ForDeletion = append(result.ForDeletion, key)
		}
	}

	return result, nil
}
