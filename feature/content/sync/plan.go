package sync

import (
	"github.com/google/uuid"

	"content-sync/core/syncdiff"
	"content-sync/feature/content/models"
)

// Plan is the full outcome of diffing a content batch against the last synced
// state: per collection, the entities to upsert and the keys to delete.
type Plan struct {
	Courses   *syncdiff.Result[string, *models.Course]
	Questions *syncdiff.Result[uuid.UUID, *models.Question]
	Options   *syncdiff.Result[uuid.UUID, *models.QuestionOption]
	Topics    *syncdiff.Result[string, *models.Topic]
	Sources   *syncdiff.Result[string, *models.Source]
	Bundles   *syncdiff.Result[string, *models.Bundle]
	Icons     *syncdiff.Result[string, *models.Icon]

	// Carried holds the previous fingerprints of entities the batch skipped.
	// They take no part in the diff and must survive into the next snapshot
	// unchanged.
	Carried Metadata
}

// BuildPlan diffs every collection of the set against the previous metadata.
// The set must already be canonical with fresh fingerprints; the plan holds
// references into it, not copies.
//
// Entities marked skipped on the set are carved out of the previous state
// before diffing: a subtree dropped by a best-effort run is neither synced
// nor deleted, its last synced fingerprints are carried forward instead.
func BuildPlan(set *models.ContentSet, previous Metadata) (*Plan, error) {
	plan := &Plan{Carried: NewMetadata()}
	var err error

	if skipped := set.Skipped; skipped != nil && !skipped.IsEmpty() {
		previous = Metadata{
			Courses:   carve(previous.Courses, plan.Carried.Courses, inSet(skipped.Courses)),
			Questions: carve(previous.Questions, plan.Carried.Questions, inSet(skipped.Questions)),
			Options:   carve(previous.Options, plan.Carried.Options, inSet(skipped.Options)),
			Topics:    carve(previous.Topics, plan.Carried.Topics, skipped.OwnsDerivedKey),
			Sources:   carve(previous.Sources, plan.Carried.Sources, skipped.OwnsDerivedKey),
			Bundles:   carve(previous.Bundles, plan.Carried.Bundles, inSet(skipped.Bundles)),
			Icons:     carve(previous.Icons, plan.Carried.Icons, inSet(skipped.Icons)),
		}
	}

	if plan.Courses, err = syncdiff.Diff(CollectionCourses, set.Courses, previous.Courses); err != nil {
		return nil, err
	}
	if plan.Questions, err = syncdiff.Diff(CollectionQuestions, set.Questions(), previous.Questions); err != nil {
		return nil, err
	}
	if plan.Options, err = syncdiff.Diff(CollectionOptions, set.Options(), previous.Options); err != nil {
		return nil, err
	}
	if plan.Topics, err = syncdiff.Diff(CollectionTopics, set.Topics(), previous.Topics); err != nil {
		return nil, err
	}
	if plan.Sources, err = syncdiff.Diff(CollectionSources, set.Sources(), previous.Sources); err != nil {
		return nil, err
	}
	if plan.Bundles, err = syncdiff.Diff(CollectionBundles, set.Bundles, previous.Bundles); err != nil {
		return nil, err
	}
	if plan.Icons, err = syncdiff.Diff(CollectionIcons, set.Icons, previous.Icons); err != nil {
		return nil, err
	}

	return plan, nil
}

// carve splits previous into the entries to diff and, via carried, the
// entries belonging to skipped entities.
func carve[K comparable](previous, carried map[K]string, skip func(K) bool) map[K]string {
	kept := make(map[K]string, len(previous))
	for key, fingerprint := range previous {
		if skip(key) {
			carried[key] = fingerprint
			continue
		}
		kept[key] = fingerprint
	}
	return kept
}

func inSet[K comparable](set map[K]struct{}) func(K) bool {
	return func(key K) bool {
		_, ok := set[key]
		return ok
	}
}

// IsEmpty reports whether the plan changes nothing.
func (p *Plan) IsEmpty() bool {
	return len(p.Courses.ForSync) == 0 && len(p.Courses.ForDeletion) == 0 &&
		len(p.Questions.ForSync) == 0 && len(p.Questions.ForDeletion) == 0 &&
		len(p.Options.ForSync) == 0 && len(p.Options.ForDeletion) == 0 &&
		len(p.Topics.ForSync) == 0 && len(p.Topics.ForDeletion) == 0 &&
		len(p.Sources.ForSync) == 0 && len(p.Sources.ForDeletion) == 0 &&
		len(p.Bundles.ForSync) == 0 && len(p.Bundles.ForDeletion) == 0 &&
		len(p.Icons.ForSync) == 0 && len(p.Icons.ForDeletion) == 0
}

// CollectionCounts summarizes one collection's share of a plan.
type CollectionCounts struct {
	ForSync     int `json:"for_sync"`
	ForDeletion int `json:"for_deletion"`
}

// Counts returns per-collection sync and deletion counts, for logs and API
// responses.
func (p *Plan) Counts() map[string]CollectionCounts {
	return map[string]CollectionCounts{
		CollectionCourses:   {ForSync: len(p.Courses.ForSync), ForDeletion: len(p.Courses.ForDeletion)},
		CollectionQuestions: {ForSync: len(p.Questions.ForSync), ForDeletion: len(p.Questions.ForDeletion)},
		CollectionOptions:   {ForSync: len(p.Options.ForSync), ForDeletion: len(p.Options.ForDeletion)},
		CollectionTopics:    {ForSync: len(p.Topics.ForSync), ForDeletion: len(p.Topics.ForDeletion)},
		CollectionSources:   {ForSync: len(p.Sources.ForSync), ForDeletion: len(p.Sources.ForDeletion)},
		CollectionBundles:   {ForSync: len(p.Bundles.ForSync), ForDeletion: len(p.Bundles.ForDeletion)},
		CollectionIcons:     {ForSync: len(p.Icons.ForSync), ForDeletion: len(p.Icons.ForDeletion)},
	}
}
