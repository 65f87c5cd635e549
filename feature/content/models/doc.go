// Package models defines the content entities (courses, questions, options,
// topics, sources, bundles, icons) and their canonicalization pipeline.
//
// Every entity goes through the same depth-first pipeline before it can be
// trusted: blank children are removed, free text is formatted, sibling
// collections are sorted into a total order, semantically equal siblings are
// collapsed, and structural invariants are validated. Only then is the content
// fingerprint computed, bottom-up, so that a parent's fingerprint covers every
// change anywhere in its subtree.
//
// Fingerprints are derived, never authored. They are memoized on the entity
// but only written by RefreshFingerprint(s); every pipeline entry point
// recomputes them from scratch.
package models
