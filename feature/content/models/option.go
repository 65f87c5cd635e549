package models

import (
	"github.com/google/uuid"

	"content-sync/core/textfmt"
)

// QuestionOption is one answer option of a question. It belongs to exactly one
// question through a weak id reference: the relation carries no lifetime
// coupling and must be assigned before it is read.
type QuestionOption struct {
	ID uuid.UUID

	questionID    uuid.UUID
	questionIDSet bool

	Text    string
	Correct bool
	// Reference is the display reference index shown to authors. It does not
	// contribute to the fingerprint.
	Reference uint16
	// PreserveCase disables forced capitalization of the option text. It does
	// not contribute to the fingerprint.
	PreserveCase bool

	fingerprint string
}

// NewQuestionOption builds an option owned by the given question. A zero id
// gets a freshly generated one.
func NewQuestionOption(id uuid.UUID, questionID uuid.UUID, text string, correct bool, reference uint16, preserveCase bool) *QuestionOption {
	if id == uuid.Nil {
		id = uuid.New()
	}

	o := &QuestionOption{
		ID:           id,
		Text:         text,
		Correct:      correct,
		Reference:    reference,
		PreserveCase: preserveCase,
	}
	o.SetQuestionID(questionID)

	return o
}

// QuestionID returns the owning question's id. It panics when read before
// assignment, since a half-wired option must never be hashed or persisted.
func (o *QuestionOption) QuestionID() uuid.UUID {
	if !o.questionIDSet {
		panic("question ID not set in question option")
	}
	return o.questionID
}

// SetQuestionID assigns the weak back-reference to the owning question.
func (o *QuestionOption) SetQuestionID(id uuid.UUID) {
	o.questionID = id
	o.questionIDSet = true
}

// Canonicalize formats the option text: normalize, ensure a trailing period,
// and capitalize the first character unless PreserveCase is set.
func (o *QuestionOption) Canonicalize() error {
	o.Text = textfmt.Format(o.Text)

	if o.Text != "" {
		o.Text = textfmt.EnsureTrailingPeriod(o.Text)
	}
	if !o.PreserveCase {
		o.Text = textfmt.CapitalizeFirst(o.Text)
	}

	return nil
}

// IsBlank reports whether the option carries no content. Blank options are
// tombstones removed by the owning question before validation.
func (o *QuestionOption) IsBlank() bool {
	return o.Text == ""
}

// EqData is the semantic equality used for deduplication: content fields only,
// generated ids ignored.
func (o *QuestionOption) EqData(other *QuestionOption) bool {
	return o.Text == other.Text && o.Correct == other.Correct
}

// HashableBytes encodes, in order: id, owning question id, text, correctness.
// Reference and PreserveCase are display concerns and excluded.
func (o *QuestionOption) HashableBytes() []byte {
	var bytes []byte
	bytes = append(bytes, o.ID[:]...)

	qid := o.QuestionID()
	bytes = append(bytes, qid[:]...)

	bytes = append(bytes, o.Text...)
	if o.Correct {
		bytes = append(bytes, 1)
	} else {
		bytes = append(bytes, 0)
	}

	return bytes
}

// Fingerprint returns the memoized content fingerprint.
func (o *QuestionOption) Fingerprint() string { return o.fingerprint }

// RefreshFingerprint recomputes the fingerprint from the current state.
func (o *QuestionOption) RefreshFingerprint() {
	o.fingerprint = Digest(o.HashableBytes())
}

// SyncKey returns the option's key within the options collection.
func (o *QuestionOption) SyncKey() uuid.UUID { return o.ID }
