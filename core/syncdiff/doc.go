// Package syncdiff provides a generic engine for computing minimal sync and
// delete sets between canonical, content-fingerprinted entities and a
// previously recorded key→fingerprint snapshot.
//
// The diff is a pure set difference keyed by content equality:
//   - a key absent from the snapshot, or present with a different fingerprint,
//     goes into the ForSync set;
//   - a key present in the snapshot but absent from the current content goes
//     into the ForDeletion set;
//   - identical key+fingerprint pairs appear in neither.
//
// The engine performs no partial or fuzzy matching; any content change after
// canonicalization changes the fingerprint and forces a resync of exactly that
// entity. It holds no state: it operates on two immutable snapshots and is
// idempotent, which makes it safe to run once per collection per sync cycle
// with no coordination.
//
// # Usage
//
//	result, err := syncdiff.Diff("courses", courses, previousMetadata)
//	if err != nil {
//	    // a DuplicateKeyError aborts the whole collection
//	}
//	upsert(result.ForSync)
//	remove(result.ForDeletion)
package syncdiff
