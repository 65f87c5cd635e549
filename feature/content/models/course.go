package models

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Course is the root of a content subtree. It owns its questions; topics and
// sources are referenced by key and derived from the questions, so they never
// contribute to the course's fingerprint.
type Course struct {
	// Key is the stable, human-assigned course key (also the authoring file
	// stem and the image directory name).
	Key string

	Name        string
	ShortName   string
	Description string
	Price       *decimal.Decimal
	Tags        []string
	// ImageFileName is the stored image reference; empty when the course has
	// no image.
	ImageFileName    string
	Year             *int16
	Order            *int16
	QuestionsPerTest *uint16
	Questions        []*Question

	fingerprint string
}

// Canonicalize runs the full pipeline on the course subtree, depth-first:
// blank questions are dropped, every question is canonicalized, then the
// question sequence is sorted, deduplicated and the course validated.
// Fingerprints are not touched here.
func (c *Course) Canonicalize() error {
	c.removeBlankQuestions()
	c.format()

	for _, question := range c.Questions {
		if err := question.Canonicalize(); err != nil {
			return err
		}
	}

	// A question may canonicalize down to blank (all options were blank and
	// the text trimmed to nothing); those tombstones go too.
	c.removeBlankQuestions()

	c.sortQuestions()
	c.deduplicateQuestions()

	return c.validate()
}

func (c *Course) removeBlankQuestions() {
	kept := c.Questions[:0]
	for _, question := range c.Questions {
		if !question.IsBlank() {
			kept = append(kept, question)
		}
	}
	c.Questions = kept
}

func (c *Course) format() {
	c.Key = strings.TrimSpace(c.Key)
	c.Name = strings.TrimSpace(c.Name)
	c.ShortName = strings.TrimSpace(c.ShortName)
	c.Description = strings.TrimSpace(c.Description)
	c.Tags = formatTags(c.Tags)
}

// sortQuestions imposes the total order on questions: source kind, then date,
// then text, then id.
func (c *Course) sortQuestions() {
	sort.Slice(c.Questions, func(i, j int) bool {
		return c.Questions[i].Compare(c.Questions[j]) < 0
	})
}

// deduplicateQuestions collapses adjacent semantically equal questions, which
// removes accidental re-imports of the same content under different ids.
func (c *Course) deduplicateQuestions() {
	c.Questions = dedupAdjacent(c.Questions, (*Question).EqData)
}

func (c *Course) validate() error {
	if c.Key == "" || c.Name == "" || c.ShortName == "" {
		return &ValidationError{Entity: "course", Key: c.Key, Reason: "key, name and short name must be non-empty"}
	}

	if c.Price != nil && c.Price.IsNegative() {
		return &ValidationError{Entity: "course", Key: c.Key, Reason: "price must be non-negative"}
	}

	return nil
}

// ReplaceQuestion swaps the question with the same id and reprocesses the
// whole course subtree, invalidating and recomputing every fingerprint on the
// path. This is the only mutation allowed after fingerprinting.
func (c *Course) ReplaceQuestion(question *Question) error {
	replaced := false
	for i, existing := range c.Questions {
		if existing.ID == question.ID {
			question.SetCourseKey(c.Key)
			c.Questions[i] = question
			replaced = true
			break
		}
	}
	if !replaced {
		return &ValidationError{Entity: "course", Key: c.Key, Reason: "question to replace not found"}
	}

	if err := c.Canonicalize(); err != nil {
		return err
	}
	c.RefreshFingerprints()

	return nil
}

// Topics returns the distinct, non-blank topics referenced by this course's
// questions, sorted by key. Fingerprints are refreshed on the way out.
func (c *Course) Topics() []*Topic {
	byKey := make(map[string]*Topic)
	for _, question := range c.Questions {
		if question.Topic == nil || question.Topic.IsBlank() {
			continue
		}
		byKey[question.Topic.Key()] = question.Topic
	}

	return sortedByKey(byKey)
}

// Sources returns the distinct sources referenced by this course's questions,
// sorted by key.
func (c *Course) Sources() []*Source {
	byKey := make(map[string]*Source)
	for _, question := range c.Questions {
		if question.Source == nil {
			continue
		}
		byKey[question.Source.Key()] = question.Source
	}

	return sortedByKey(byKey)
}

// HashableBytes encodes, in order: key, name, short name, description, price,
// tags, image reference, year, order, questions per test, question
// fingerprints. Topic and source references are cross-collection and
// excluded.
func (c *Course) HashableBytes() []byte {
	var b []byte
	b = append(b, c.Key...)
	b = append(b, c.Name...)
	b = append(b, c.ShortName...)

	b = appendLabeled(b, "description", c.Description)
	if c.Price != nil {
		b = appendLabeled(b, "price", c.Price.String())
	}

	b = append(b, strings.Join(c.Tags, ",")...)
	b = appendLabeled(b, "image_file_name", c.ImageFileName)

	if c.Year != nil {
		b = appendLabeledUint16(b, "year", uint16(*c.Year))
	}
	if c.Order != nil {
		b = appendLabeledUint16(b, "order", uint16(*c.Order))
	}
	if c.QuestionsPerTest != nil {
		b = appendLabeledUint16(b, "questions_per_test", *c.QuestionsPerTest)
	}

	for _, question := range c.Questions {
		b = append(b, question.Fingerprint()...)
	}

	return b
}

// Fingerprint returns the memoized content fingerprint.
func (c *Course) Fingerprint() string { return c.fingerprint }

// RefreshFingerprint recomputes the course's fingerprint, assuming question
// fingerprints are already final. Use RefreshFingerprints to recompute the
// whole subtree.
func (c *Course) RefreshFingerprint() {
	c.fingerprint = Digest(c.HashableBytes())
}

// RefreshFingerprints recomputes fingerprints bottom-up across the whole
// subtree: options, questions, then the course.
func (c *Course) RefreshFingerprints() {
	for _, question := range c.Questions {
		question.RefreshFingerprints()
	}
	c.RefreshFingerprint()
}

// SyncKey returns the course's key within the courses collection.
func (c *Course) SyncKey() string { return c.Key }

// CurrentImageFileName implements WithImage.
func (c *Course) CurrentImageFileName() (string, bool) {
	return c.ImageFileName, c.ImageFileName != ""
}

// CanonicalImageStem implements WithImage: a course's image is named after its
// key.
func (c *Course) CanonicalImageStem() string { return c.Key }

// ImageDir implements WithImage: course images live under the course's key.
func (c *Course) ImageDir() string { return c.Key }

// ReplaceImageFileName implements WithImage.
func (c *Course) ReplaceImageFileName(name string) { c.ImageFileName = name }

// QuestionByID returns the question with the given id, or nil.
func (c *Course) QuestionByID(id uuid.UUID) *Question {
	for _, question := range c.Questions {
		if question.ID == id {
			return question
		}
	}
	return nil
}

// sortedByKey flattens a key→entity map into a slice sorted by key.
func sortedByKey[E any](byKey map[string]E) []E {
	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]E, 0, len(keys))
	for _, key := range keys {
		out = append(out, byKey[key])
	}
	return out
}
