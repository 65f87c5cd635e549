package models

import "content-sync/core/textfmt"

// TopicKeySeparator joins the course key and the topic name into the topic's
// composite key.
const TopicKeySeparator = "::"

// DefaultTopicName marks the catch-all topic authors use when a question has
// no real topic assigned.
const DefaultTopicName = "_"

// Topic groups questions of one course under a name. Topics are referenced by
// questions via their composite key and own no children; the collection synced
// to the store is derived from the questions themselves.
type Topic struct {
	courseKey    string
	courseKeySet bool

	Name string

	fingerprint string
}

// NewTopic builds a topic for the given course.
func NewTopic(courseKey, name string) *Topic {
	t := &Topic{Name: name}
	t.SetCourseKey(courseKey)
	return t
}

// CourseKey returns the owning course's key, panicking when read before
// assignment.
func (t *Topic) CourseKey() string {
	if !t.courseKeySet {
		panic("course key not set in topic")
	}
	return t.courseKey
}

// SetCourseKey assigns the weak back-reference to the course.
func (t *Topic) SetCourseKey(key string) {
	t.courseKey = key
	t.courseKeySet = true
}

// Key returns the composite sync key: courseKey::name.
func (t *Topic) Key() string {
	return t.CourseKey() + TopicKeySeparator + t.Name
}

// Canonicalize normalizes the topic name: formatted, end period removed,
// first character capitalized.
func (t *Topic) Canonicalize() error {
	t.Name = textfmt.CapitalizeFirst(textfmt.RemoveEndPeriod(textfmt.Format(t.Name)))
	return nil
}

// IsBlank reports whether the topic has no name.
func (t *Topic) IsBlank() bool {
	return t.Name == ""
}

// IsDefault reports whether this is the catch-all topic.
func (t *Topic) IsDefault() bool {
	return t.Name == DefaultTopicName
}

// HashableBytes is the composite key: a topic has no content beyond it.
func (t *Topic) HashableBytes() []byte {
	return []byte(t.Key())
}

// Fingerprint returns the memoized content fingerprint.
func (t *Topic) Fingerprint() string { return t.fingerprint }

// RefreshFingerprint recomputes the fingerprint from the current state.
func (t *Topic) RefreshFingerprint() {
	t.fingerprint = Digest(t.HashableBytes())
}

// SyncKey returns the topic's key within the topics collection.
func (t *Topic) SyncKey() string { return t.Key() }
