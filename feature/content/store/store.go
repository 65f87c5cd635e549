package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"content-sync/feature/content/sync"
)

// Store applies sync plans to the relational content store.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewStore creates a Store on the given database handle.
func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// Apply writes the plan and the metadata snapshot in a single transaction.
// Either every upsert, deletion and the snapshot land, or none of them do.
func (s *Store) Apply(ctx context.Context, plan *sync.Plan, metadata sync.Metadata) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyCollection(tx, plan.Courses.ForSync, plan.Courses.ForDeletion, courseRow, "key", CourseRow{}); err != nil {
			return fmt.Errorf("courses: %w", err)
		}
		if err := applyCollection(tx, plan.Questions.ForSync, uuidStrings(plan.Questions.ForDeletion), questionRow, "id", QuestionRow{}); err != nil {
			return fmt.Errorf("questions: %w", err)
		}
		if err := applyCollection(tx, plan.Options.ForSync, uuidStrings(plan.Options.ForDeletion), optionRow, "id", OptionRow{}); err != nil {
			return fmt.Errorf("question options: %w", err)
		}
		if err := applyCollection(tx, plan.Topics.ForSync, plan.Topics.ForDeletion, topicRow, "key", TopicRow{}); err != nil {
			return fmt.Errorf("topics: %w", err)
		}
		if err := applyCollection(tx, plan.Sources.ForSync, plan.Sources.ForDeletion, sourceRow, "key", SourceRow{}); err != nil {
			return fmt.Errorf("sources: %w", err)
		}
		if err := applyCollection(tx, plan.Bundles.ForSync, plan.Bundles.ForDeletion, bundleRow, "key", BundleRow{}); err != nil {
			return fmt.Errorf("bundles: %w", err)
		}
		if err := applyCollection(tx, plan.Icons.ForSync, plan.Icons.ForDeletion, iconRow, "key", IconRow{}); err != nil {
			return fmt.Errorf("icons: %w", err)
		}

		return snapshotMetadata(tx, metadata)
	})
	if err != nil {
		return fmt.Errorf("failed to apply sync plan: %w", err)
	}

	s.log.Info("applied sync plan",
		zap.Int("courses_synced", len(plan.Courses.ForSync)),
		zap.Int("questions_synced", len(plan.Questions.ForSync)),
		zap.Int("options_synced", len(plan.Options.ForSync)),
	)

	return nil
}

// applyCollection upserts the changed rows and deletes the removed keys of one
// collection.
func applyCollection[E any, R any](tx *gorm.DB, forSync []E, forDeletion []string, toRow func(E) R, keyColumn string, model R) error {
	if len(forSync) > 0 {
		rows := make([]R, 0, len(forSync))
		for _, entity := range forSync {
			rows = append(rows, toRow(entity))
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error; err != nil {
			return err
		}
	}

	if len(forDeletion) > 0 {
		if err := tx.Where("`"+keyColumn+"` IN ?", forDeletion).Delete(&model).Error; err != nil {
			return err
		}
	}

	return nil
}

// snapshotMetadata replaces the recorded sync state with the new snapshot.
func snapshotMetadata(tx *gorm.DB, metadata sync.Metadata) error {
	if err := tx.Where("1 = 1").Delete(&MetadataRow{}).Error; err != nil {
		return err
	}

	rows := metadataRows(metadata)
	if len(rows) == 0 {
		return nil
	}

	return tx.Create(&rows).Error
}

func metadataRows(metadata sync.Metadata) []MetadataRow {
	var rows []MetadataRow

	appendRows := func(collection string, entries map[string]string) {
		for key, fingerprint := range entries {
			rows = append(rows, MetadataRow{Collection: collection, EntryKey: key, Fingerprint: fingerprint})
		}
	}

	appendRows(sync.CollectionCourses, metadata.Courses)
	appendRows(sync.CollectionQuestions, uuidKeyStrings(metadata.Questions))
	appendRows(sync.CollectionOptions, uuidKeyStrings(metadata.Options))
	appendRows(sync.CollectionTopics, metadata.Topics)
	appendRows(sync.CollectionSources, metadata.Sources)
	appendRows(sync.CollectionBundles, metadata.Bundles)
	appendRows(sync.CollectionIcons, metadata.Icons)

	return rows
}

// LoadMetadata reads the last synced state. A store that was never synced
// yields empty metadata.
func (s *Store) LoadMetadata(ctx context.Context) (sync.Metadata, error) {
	metadata := sync.NewMetadata()

	var rows []MetadataRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return metadata, fmt.Errorf("failed to load sync metadata: %w", err)
	}

	for _, row := range rows {
		switch row.Collection {
		case sync.CollectionCourses:
			metadata.Courses[row.EntryKey] = row.Fingerprint
		case sync.CollectionQuestions:
			id, err := uuid.Parse(row.EntryKey)
			if err != nil {
				return metadata, fmt.Errorf("invalid question key %q in sync metadata: %w", row.EntryKey, err)
			}
			metadata.Questions[id] = row.Fingerprint
		case sync.CollectionOptions:
			id, err := uuid.Parse(row.EntryKey)
			if err != nil {
				return metadata, fmt.Errorf("invalid option key %q in sync metadata: %w", row.EntryKey, err)
			}
			metadata.Options[id] = row.Fingerprint
		case sync.CollectionTopics:
			metadata.Topics[row.EntryKey] = row.Fingerprint
		case sync.CollectionSources:
			metadata.Sources[row.EntryKey] = row.Fingerprint
		case sync.CollectionBundles:
			metadata.Bundles[row.EntryKey] = row.Fingerprint
		case sync.CollectionIcons:
			metadata.Icons[row.EntryKey] = row.Fingerprint
		default:
			s.log.Warn("ignoring unknown collection in sync metadata", zap.String("collection", row.Collection))
		}
	}

	return metadata, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func uuidKeyStrings(entries map[uuid.UUID]string) map[string]string {
	out := make(map[string]string, len(entries))
	for id, fingerprint := range entries {
		out[id.String()] = fingerprint
	}
	return out
}
