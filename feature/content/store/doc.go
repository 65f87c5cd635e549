// Package store persists sync plans to the relational content store. A plan
// is applied in one transaction: per-collection upserts and deletions plus the
// metadata snapshot the next diff starts from, so a failed apply leaves the
// previous state intact.
package store
