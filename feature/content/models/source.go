package models

import (
	"strings"

	"content-sync/core/textfmt"
)

// SourceKind classifies where a question was originally asked.
type SourceKind string

const (
	SourceExam           SourceKind = "exam"
	SourcePartial        SourceKind = "partial"
	SourceSelfAssessment SourceKind = "self_assessment"
	SourceOther          SourceKind = "other"
)

// sortOrder gives source kinds a total order for question sorting.
func (k SourceKind) sortOrder() int {
	switch k {
	case SourceExam:
		return 0
	case SourcePartial:
		return 1
	case SourceSelfAssessment:
		return 2
	default:
		return 3
	}
}

// IsValid reports whether k is one of the known kinds.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceExam, SourcePartial, SourceSelfAssessment, SourceOther:
		return true
	default:
		return false
	}
}

const (
	// SourceKeySeparator joins the parts of a source's composite key.
	SourceKeySeparator = "::"
	// EmptySourceKeyField stands in for an absent part in the composite key,
	// keeping keys unambiguous.
	EmptySourceKeyField = "!"
)

// Source identifies where a question came from: an exam or partial on a date,
// a self assessment, or another origin. Sources are referenced by questions
// via their composite key; the synced collection is derived from the
// questions.
type Source struct {
	courseKey    string
	courseKeySet bool

	Kind    SourceKind
	Name    string
	Date    *Date
	Variant string

	fingerprint string
}

// NewSource builds a source for the given course.
func NewSource(courseKey string, kind SourceKind, name string, date *Date, variant string) *Source {
	s := &Source{Kind: kind, Name: name, Date: date, Variant: variant}
	s.SetCourseKey(courseKey)
	return s
}

// CourseKey returns the owning course's key, panicking when read before
// assignment.
func (s *Source) CourseKey() string {
	if !s.courseKeySet {
		panic("course key not set in source")
	}
	return s.courseKey
}

// SetCourseKey assigns the weak back-reference to the course.
func (s *Source) SetCourseKey(key string) {
	s.courseKey = key
	s.courseKeySet = true
}

// Key returns the composite sync key:
// courseKey::kind::name::date::variant, with "!" for absent parts.
func (s *Source) Key() string {
	name := s.Name
	if name == "" {
		name = EmptySourceKeyField
	}

	date := EmptySourceKeyField
	if s.Date != nil {
		date = s.Date.String()
	}

	variant := s.Variant
	if variant == "" {
		variant = EmptySourceKeyField
	}

	return strings.Join(
		[]string{s.CourseKey(), string(s.Kind), name, date, variant},
		SourceKeySeparator,
	)
}

// Canonicalize formats and validates the source.
func (s *Source) Canonicalize() error {
	s.format()
	return s.validate()
}

func (s *Source) format() {
	s.Name = textfmt.Format(s.Name)
	s.Variant = strings.TrimSpace(s.Variant)
}

// validate enforces the per-kind field requirements: exams and partials need a
// date, partials additionally need a name.
func (s *Source) validate() error {
	if !s.Kind.IsValid() {
		return &ValidationError{Entity: "source", Key: s.Key(), Reason: "unknown source kind"}
	}

	if s.Date == nil && (s.Kind == SourceExam || s.Kind == SourcePartial) {
		return &ValidationError{Entity: "source", Key: s.Key(), Reason: "a date is required for this kind"}
	}

	if s.Name == "" && s.Kind == SourcePartial {
		return &ValidationError{Entity: "source", Key: s.Key(), Reason: "a name is required for partials"}
	}

	return nil
}

// Compare orders sources by kind, then date, for question sorting.
func (s *Source) Compare(other *Source) int {
	if d := s.Kind.sortOrder() - other.Kind.sortOrder(); d != 0 {
		return d
	}
	return compareDatePtr(s.Date, other.Date)
}

// EqData is the semantic equality over the composite key.
func (s *Source) EqData(other *Source) bool {
	return s.Key() == other.Key()
}

// HashableBytes is the composite key: a source has no content beyond it.
func (s *Source) HashableBytes() []byte {
	return []byte(s.Key())
}

// Fingerprint returns the memoized content fingerprint.
func (s *Source) Fingerprint() string { return s.fingerprint }

// RefreshFingerprint recomputes the fingerprint from the current state.
func (s *Source) RefreshFingerprint() {
	s.fingerprint = Digest(s.HashableBytes())
}

// SyncKey returns the source's key within the sources collection.
func (s *Source) SyncKey() string { return s.Key() }
