package sync

import (
	"github.com/google/uuid"

	"content-sync/feature/content/models"
)

// Collection names used in diagnostics and metadata persistence.
const (
	CollectionCourses   = "courses"
	CollectionQuestions = "questions"
	CollectionOptions   = "question_options"
	CollectionTopics    = "topics"
	CollectionSources   = "sources"
	CollectionBundles   = "bundles"
	CollectionIcons     = "icons"
)

// Metadata records, per collection, the key→fingerprint pairs of the last
// successful sync. An empty Metadata means nothing was ever synced, so every
// entity diffs as new.
type Metadata struct {
	Courses   map[string]string
	Questions map[uuid.UUID]string
	Options   map[uuid.UUID]string
	Topics    map[string]string
	Sources   map[string]string
	Bundles   map[string]string
	Icons     map[string]string
}

// NewMetadata returns an empty metadata snapshot with all maps allocated.
func NewMetadata() Metadata {
	return Metadata{
		Courses:   make(map[string]string),
		Questions: make(map[uuid.UUID]string),
		Options:   make(map[uuid.UUID]string),
		Topics:    make(map[string]string),
		Sources:   make(map[string]string),
		Bundles:   make(map[string]string),
		Icons:     make(map[string]string),
	}
}

// Merge copies every entry of other into m. Used to carry the previous
// fingerprints of skipped entities into the next snapshot.
func (m Metadata) Merge(other Metadata) {
	copyEntries(m.Courses, other.Courses)
	copyEntries(m.Questions, other.Questions)
	copyEntries(m.Options, other.Options)
	copyEntries(m.Topics, other.Topics)
	copyEntries(m.Sources, other.Sources)
	copyEntries(m.Bundles, other.Bundles)
	copyEntries(m.Icons, other.Icons)
}

func copyEntries[K comparable](dst, src map[K]string) {
	for key, fingerprint := range src {
		dst[key] = fingerprint
	}
}

// MetadataFromSet snapshots the fingerprints of a canonical, fingerprinted
// content set. Applying a plan persists this snapshot so the next diff starts
// from it.
func MetadataFromSet(set *models.ContentSet) Metadata {
	metadata := NewMetadata()

	for _, course := range set.Courses {
		metadata.Courses[course.SyncKey()] = course.Fingerprint()
	}
	for _, question := range set.Questions() {
		metadata.Questions[question.SyncKey()] = question.Fingerprint()
	}
	for _, option := range set.Options() {
		metadata.Options[option.SyncKey()] = option.Fingerprint()
	}
	for _, topic := range set.Topics() {
		metadata.Topics[topic.SyncKey()] = topic.Fingerprint()
	}
	for _, source := range set.Sources() {
		metadata.Sources[source.SyncKey()] = source.Fingerprint()
	}
	for _, bundle := range set.Bundles {
		metadata.Bundles[bundle.SyncKey()] = bundle.Fingerprint()
	}
	for _, icon := range set.Icons {
		metadata.Icons[icon.SyncKey()] = icon.Fingerprint()
	}

	return metadata
}
