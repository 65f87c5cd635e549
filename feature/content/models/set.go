package models

import (
	"strings"

	"github.com/google/uuid"
)

// ContentSet is one batch of authored content: every top-level collection that
// participates in a sync cycle. Questions, options, topics and sources are
// derived from the courses.
type ContentSet struct {
	Courses []*Course
	Bundles []*Bundle
	Icons   []*Icon

	// Skipped marks the entities a best-effort run dropped from the batch;
	// nil when nothing was skipped. A skipped subtree must diff as unchanged,
	// never as removed.
	Skipped *SkippedKeys
}

// Questions flattens every course's questions.
func (s *ContentSet) Questions() []*Question {
	var questions []*Question
	for _, course := range s.Courses {
		questions = append(questions, course.Questions...)
	}
	return questions
}

// Options flattens every question's options.
func (s *ContentSet) Options() []*QuestionOption {
	var options []*QuestionOption
	for _, question := range s.Questions() {
		options = append(options, question.Options...)
	}
	return options
}

// Topics merges the distinct topics of every course.
func (s *ContentSet) Topics() []*Topic {
	var topics []*Topic
	for _, course := range s.Courses {
		topics = append(topics, course.Topics()...)
	}
	return topics
}

// Sources merges the distinct sources of every course.
func (s *ContentSet) Sources() []*Source {
	var sources []*Source
	for _, course := range s.Courses {
		sources = append(sources, course.Sources()...)
	}
	return sources
}

// SkippedKeys holds the key sets of entities dropped from a best-effort
// batch. Topics and sources have no set of their own: their composite keys
// embed the owning course key, so OwnsDerivedKey resolves them by prefix.
type SkippedKeys struct {
	Courses   map[string]struct{}
	Questions map[uuid.UUID]struct{}
	Options   map[uuid.UUID]struct{}
	Bundles   map[string]struct{}
	Icons     map[string]struct{}
}

// NewSkippedKeys returns an empty skip record with all sets allocated.
func NewSkippedKeys() *SkippedKeys {
	return &SkippedKeys{
		Courses:   make(map[string]struct{}),
		Questions: make(map[uuid.UUID]struct{}),
		Options:   make(map[uuid.UUID]struct{}),
		Bundles:   make(map[string]struct{}),
		Icons:     make(map[string]struct{}),
	}
}

// AddCourse marks the course and every question and option below it.
func (s *SkippedKeys) AddCourse(course *Course) {
	s.Courses[course.Key] = struct{}{}
	for _, question := range course.Questions {
		if question.ID != uuid.Nil {
			s.Questions[question.ID] = struct{}{}
		}
		for _, option := range question.Options {
			if option.ID != uuid.Nil {
				s.Options[option.ID] = struct{}{}
			}
		}
	}
}

// AddBundle marks one skipped bundle.
func (s *SkippedKeys) AddBundle(key string) {
	s.Bundles[key] = struct{}{}
}

// AddIcon marks one skipped icon.
func (s *SkippedKeys) AddIcon(key string) {
	s.Icons[key] = struct{}{}
}

// OwnsDerivedKey reports whether a topic or source composite key belongs to a
// skipped course.
func (s *SkippedKeys) OwnsDerivedKey(key string) bool {
	for courseKey := range s.Courses {
		if strings.HasPrefix(key, courseKey+TopicKeySeparator) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether nothing was skipped.
func (s *SkippedKeys) IsEmpty() bool {
	return len(s.Courses) == 0 && len(s.Bundles) == 0 && len(s.Icons) == 0
}
