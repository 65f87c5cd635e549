package models

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"content-sync/core/textfmt"
)

// Question is a single question of a course. It owns its options and holds
// weak references to its course (by key), topic and source (by composite key).
type Question struct {
	ID uuid.UUID

	courseKey    string
	courseKeySet bool

	Text        string
	Explanation *Explanation
	Topic       *Topic
	Source      *Source
	Tags        []string
	// ImageFileName is the stored image reference; empty when the question
	// has no image.
	ImageFileName string
	Options       []*QuestionOption

	fingerprint string
}

// NewQuestion builds a question owned by the given course. A zero id gets a
// freshly generated one.
func NewQuestion(courseKey string, id uuid.UUID, text string) *Question {
	if id == uuid.Nil {
		id = uuid.New()
	}

	q := &Question{ID: id, Text: text}
	q.SetCourseKey(courseKey)

	return q
}

// CourseKey returns the owning course's key, panicking when read before
// assignment.
func (q *Question) CourseKey() string {
	if !q.courseKeySet {
		panic("course key not set in question")
	}
	return q.courseKey
}

// SetCourseKey assigns the weak back-reference to the course and propagates it
// to the question's topic and source references.
func (q *Question) SetCourseKey(key string) {
	q.courseKey = key
	q.courseKeySet = true

	if q.Topic != nil {
		q.Topic.SetCourseKey(key)
	}
	if q.Source != nil {
		q.Source.SetCourseKey(key)
	}
}

// IsBlank reports whether the question carries no content at all. Blank
// questions are tombstones: they are exempt from validation and removed by
// the owning course before its own count checks.
func (q *Question) IsBlank() bool {
	return q.Text == "" && len(q.Options) == 0
}

// Canonicalize runs the full pipeline on the question subtree: remove blank
// options, format every free-text field, sort and deduplicate the options,
// then validate. Fingerprints are not touched here.
func (q *Question) Canonicalize() error {
	q.removeBlankOptions()

	if err := q.format(); err != nil {
		return err
	}

	q.sortOptions()
	q.deduplicateOptions()

	return q.validate()
}

func (q *Question) removeBlankOptions() {
	kept := q.Options[:0]
	for _, option := range q.Options {
		if strings.TrimSpace(option.Text) != "" {
			kept = append(kept, option)
		}
	}
	q.Options = kept
}

func (q *Question) format() error {
	q.Text = textfmt.Format(q.Text)

	if q.Explanation != nil {
		if err := q.Explanation.Canonicalize(); err != nil {
			// An explanation without text is an authoring leftover, not an error.
			if q.Explanation.Text == "" {
				q.Explanation = nil
			} else {
				return err
			}
		}
	}

	if q.Topic != nil {
		if err := q.Topic.Canonicalize(); err != nil {
			return err
		}
		if q.Topic.IsBlank() {
			q.Topic = nil
		}
	}

	if q.Source != nil {
		if err := q.Source.Canonicalize(); err != nil {
			return err
		}
	}

	q.Tags = formatTags(q.Tags)

	for _, option := range q.Options {
		if err := option.Canonicalize(); err != nil {
			return err
		}
	}

	return nil
}

// sortOptions imposes the total order on options: correct first, then
// lexicographically by text, with the id as the final tie-break so exact text
// duplicates still order deterministically pending dedup.
func (q *Question) sortOptions() {
	sort.Slice(q.Options, func(i, j int) bool {
		a, b := q.Options[i], q.Options[j]

		if a.Correct != b.Correct {
			return a.Correct
		}
		if a.Text != b.Text {
			return a.Text < b.Text
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
}

// deduplicateOptions collapses adjacent semantically equal options.
func (q *Question) deduplicateOptions() {
	q.Options = dedupAdjacent(q.Options, (*QuestionOption).EqData)
}

func (q *Question) validate() error {
	if q.IsBlank() {
		return nil
	}

	if q.Text == "" {
		return &ValidationError{Entity: "question", Key: q.ID.String(), Reason: "text is empty"}
	}

	if q.Source == nil {
		return &ValidationError{Entity: "question", Key: q.ID.String(), Reason: "source is missing"}
	}

	if count := len(q.Options); count < 2 || count > 5 {
		return &ValidationError{
			Entity: "question",
			Key:    q.ID.String(),
			Reason: fmt.Sprintf("has %d option(s)", count),
		}
	}

	texts := make(map[string]struct{}, len(q.Options))
	for _, option := range q.Options {
		if _, dup := texts[option.Text]; dup {
			return &ValidationError{
				Entity: "question",
				Key:    q.ID.String(),
				Reason: fmt.Sprintf("duplicate option text %q", option.Text),
			}
		}
		texts[option.Text] = struct{}{}
	}

	correct := 0
	for _, option := range q.Options {
		if option.Correct {
			correct++
		}
	}
	if correct != 1 {
		return &ValidationError{
			Entity: "question",
			Key:    q.ID.String(),
			Reason: fmt.Sprintf("has %d correct options", correct),
		}
	}

	return nil
}

// EqData is the semantic equality used for deduplication: text, source and
// the option set compared pairwise semantically, ids ignored.
func (q *Question) EqData(other *Question) bool {
	if q.Text != other.Text {
		return false
	}

	switch {
	case q.Source == nil && other.Source != nil:
		return false
	case q.Source != nil && other.Source == nil:
		return false
	case q.Source != nil && !q.Source.EqData(other.Source):
		return false
	}

	if len(q.Options) != len(other.Options) {
		return false
	}
	for _, a := range q.Options {
		found := false
		for _, b := range other.Options {
			if a.EqData(b) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Compare orders questions: by source (kind, then date), then text, then id as
// the final tie-break guaranteeing a total order.
func (q *Question) Compare(other *Question) int {
	switch {
	case q.Source == nil && other.Source != nil:
		return -1
	case q.Source != nil && other.Source == nil:
		return 1
	case q.Source != nil:
		if d := q.Source.Compare(other.Source); d != 0 {
			return d
		}
	}

	if q.Text != other.Text {
		if q.Text < other.Text {
			return -1
		}
		return 1
	}

	return bytes.Compare(q.ID[:], other.ID[:])
}

// HashableBytes encodes, in order: id, course key, text, explanation bytes,
// topic key, tags, image reference, option fingerprints, source key. Optional
// fields contribute zero bytes when absent.
func (q *Question) HashableBytes() []byte {
	var b []byte
	b = append(b, q.ID[:]...)
	b = append(b, q.CourseKey()...)
	b = append(b, q.Text...)

	if q.Explanation != nil {
		b = appendLabeled(b, "explanation", string(q.Explanation.HashableBytes()))
	}
	if q.Topic != nil {
		b = appendLabeled(b, "topic", q.Topic.Key())
	}

	b = append(b, strings.Join(q.Tags, ",")...)
	b = appendLabeled(b, "image_file_name", q.ImageFileName)

	for _, option := range q.Options {
		b = append(b, option.Fingerprint()...)
	}

	if q.Source != nil {
		b = append(b, q.Source.Key()...)
	}

	return b
}

// Fingerprint returns the memoized content fingerprint.
func (q *Question) Fingerprint() string { return q.fingerprint }

// RefreshFingerprint recomputes the question's fingerprint, assuming child
// fingerprints are already final. Use RefreshFingerprints to recompute the
// whole subtree.
func (q *Question) RefreshFingerprint() {
	q.fingerprint = Digest(q.HashableBytes())
}

// RefreshFingerprints recomputes fingerprints bottom-up: options and
// references first, then the question itself.
func (q *Question) RefreshFingerprints() {
	for _, option := range q.Options {
		option.RefreshFingerprint()
	}
	if q.Explanation != nil {
		q.Explanation.RefreshFingerprint()
	}
	if q.Topic != nil {
		q.Topic.RefreshFingerprint()
	}
	if q.Source != nil {
		q.Source.RefreshFingerprint()
	}

	q.RefreshFingerprint()
}

// SyncKey returns the question's key within the questions collection.
func (q *Question) SyncKey() uuid.UUID { return q.ID }

// CurrentImageFileName implements WithImage.
func (q *Question) CurrentImageFileName() (string, bool) {
	return q.ImageFileName, q.ImageFileName != ""
}

// CanonicalImageStem implements WithImage: a question's image is named after
// its id.
func (q *Question) CanonicalImageStem() string { return q.ID.String() }

// ImageDir implements WithImage: question images live under the owning
// course's key.
func (q *Question) ImageDir() string { return q.CourseKey() }

// ReplaceImageFileName implements WithImage.
func (q *Question) ReplaceImageFileName(name string) { q.ImageFileName = name }

// formatTags trims every tag and drops the ones left empty.
func formatTags(tags []string) []string {
	formatted := tags[:0]
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			formatted = append(formatted, tag)
		}
	}
	return formatted
}

// dedupAdjacent collapses runs of adjacent elements equal under eq, keeping
// the first of each run. The slice must already be sorted so that semantic
// duplicates are adjacent.
func dedupAdjacent[E any](items []E, eq func(E, E) bool) []E {
	if len(items) < 2 {
		return items
	}

	kept := items[:1]
	for _, item := range items[1:] {
		if !eq(kept[len(kept)-1], item) {
			kept = append(kept, item)
		}
	}
	return kept
}
