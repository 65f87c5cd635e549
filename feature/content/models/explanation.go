package models

import (
	"strings"
	"time"

	"content-sync/core/textfmt"
)

// Explanation is a hashable sub-entity of a question: a free-text rationale
// with its author and date. It is owned by the question and contributes its
// canonical bytes, not a fingerprint, to the question's encoding.
type Explanation struct {
	Text string
	By   string
	Date time.Time

	fingerprint string
}

// NewExplanation builds an explanation from raw authored fields.
func NewExplanation(text, by string, date time.Time) *Explanation {
	return &Explanation{Text: text, By: by, Date: date}
}

// Canonicalize formats and validates the explanation.
func (e *Explanation) Canonicalize() error {
	e.format()
	return e.validate()
}

func (e *Explanation) format() {
	e.Text = textfmt.Format(e.Text)
	e.By = strings.TrimSpace(e.By)
}

func (e *Explanation) validate() error {
	if e.Text == "" || e.By == "" {
		return &ValidationError{Entity: "explanation", Key: e.By, Reason: "text and author must be non-empty"}
	}
	return nil
}

// IsBlank reports whether the explanation carries no content at all.
func (e *Explanation) IsBlank() bool {
	return e.Text == "" && e.By == ""
}

// HashableBytes encodes, in order: text, author, date (RFC 3339).
func (e *Explanation) HashableBytes() []byte {
	var bytes []byte
	bytes = append(bytes, e.Text...)
	bytes = append(bytes, e.By...)
	bytes = append(bytes, e.Date.UTC().Format(time.RFC3339)...)
	return bytes
}

// Fingerprint returns the memoized content fingerprint.
func (e *Explanation) Fingerprint() string { return e.fingerprint }

// RefreshFingerprint recomputes the fingerprint from the current state.
func (e *Explanation) RefreshFingerprint() {
	e.fingerprint = Digest(e.HashableBytes())
}
