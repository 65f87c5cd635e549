// Package textfmt provides the pure text-normalization rules applied to every
// free-text field before an entity is fingerprinted.
//
// The rules are deliberately small and deterministic: the same semantic text
// must always normalize to the same byte sequence, since the canonical form is
// the input to content hashing.
package textfmt
