package content

import (
	"context"
	"errors"
	"fmt"
	gosync "sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"content-sync/core/storage"
	"content-sync/feature/content/assets"
	"content-sync/feature/content/models"
	"content-sync/feature/content/store"
	"content-sync/feature/content/sync"
)

// Failure records one entity skipped in a best-effort run.
type Failure struct {
	Collection string `json:"collection"`
	Key        string `json:"key"`
	Reason     string `json:"reason"`
}

// Service drives the content pipeline: load, canonicalize, rename images,
// fingerprint, diff and apply.
type Service struct {
	cfg     Config
	logger  *zap.Logger
	renamer *assets.Renamer
	store   *store.Store
}

// NewService creates a new content service.
func NewService(cfg Config, client storage.Client, bucket string, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		cfg:     cfg,
		logger:  logger,
		renamer: assets.NewRenamer(client, bucket, logger),
		store:   store.NewStore(db, logger),
	}
}

// LoadSet reads the configured authoring files into one content set.
func (s *Service) LoadSet() (*models.ContentSet, error) {
	courses, err := LoadCoursesDir(s.cfg.CoursesDir)
	if err != nil {
		return nil, err
	}

	bundles, err := LoadBundlesFile(s.cfg.BundlesFile)
	if err != nil {
		return nil, err
	}

	icons, err := LoadIconsFile(s.cfg.IconsFile)
	if err != nil {
		return nil, err
	}

	s.logger.Info("loaded content batch",
		zap.Int("courses", len(courses)),
		zap.Int("bundles", len(bundles)),
		zap.Int("icons", len(icons)),
	)

	return &models.ContentSet{Courses: courses, Bundles: bundles, Icons: icons}, nil
}

// Prepare canonicalizes the whole set, renames stored images to their
// canonical names and computes fingerprints bottom-up. With bestEffort set,
// entities failing validation are dropped from the set and reported instead
// of aborting the batch.
func (s *Service) Prepare(ctx context.Context, set *models.ContentSet, bestEffort bool) ([]Failure, error) {
	failures, err := s.canonicalize(ctx, set, bestEffort)
	if err != nil {
		return nil, err
	}

	// Renames must precede fingerprinting: the final image reference is part
	// of the hashed content.
	if err := s.renamer.RenameAll(ctx, set); err != nil {
		return nil, err
	}

	for _, course := range set.Courses {
		course.RefreshFingerprints()
	}
	for _, bundle := range set.Bundles {
		bundle.RefreshFingerprint()
	}
	for _, icon := range set.Icons {
		icon.RefreshFingerprint()
	}

	return failures, nil
}

// canonicalize runs course canonicalization in parallel; courses are
// independent subtrees. Bundles and icons follow serially, they are cheap.
func (s *Service) canonicalize(ctx context.Context, set *models.ContentSet, bestEffort bool) ([]Failure, error) {
	var (
		mu       gosync.Mutex
		failures []Failure
	)

	fail := func(collection, key string, err error) error {
		if !bestEffort {
			return err
		}
		mu.Lock()
		failures = append(failures, Failure{Collection: collection, Key: key, Reason: err.Error()})
		mu.Unlock()
		return nil
	}

	group, _ := errgroup.WithContext(ctx)
	failed := make([]bool, len(set.Courses))
	for i, course := range set.Courses {
		group.Go(func() error {
			if err := course.Canonicalize(); err != nil {
				failed[i] = true
				return fail(sync.CollectionCourses, course.Key, err)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Skipped entities stay out of the batch but must not diff as removed;
	// the skip record lets the planner carry their last synced state forward.
	skipped := models.NewSkippedKeys()

	kept := set.Courses[:0]
	for i, course := range set.Courses {
		if failed[i] {
			skipped.AddCourse(course)
			continue
		}
		kept = append(kept, course)
	}
	set.Courses = kept

	keptBundles := set.Bundles[:0]
	for _, bundle := range set.Bundles {
		if err := bundle.Canonicalize(); err != nil {
			if err := fail(sync.CollectionBundles, bundle.Key, err); err != nil {
				return nil, err
			}
			skipped.AddBundle(bundle.Key)
			continue
		}
		keptBundles = append(keptBundles, bundle)
	}
	set.Bundles = keptBundles

	keptIcons := set.Icons[:0]
	for _, icon := range set.Icons {
		if err := icon.Canonicalize(); err != nil {
			if err := fail(sync.CollectionIcons, icon.Key, err); err != nil {
				return nil, err
			}
			skipped.AddIcon(icon.Key)
			continue
		}
		keptIcons = append(keptIcons, icon)
	}
	set.Icons = keptIcons

	if !skipped.IsEmpty() {
		set.Skipped = skipped
	}

	return failures, nil
}

// Plan diffs the prepared set against the last synced state without writing
// anything.
func (s *Service) Plan(ctx context.Context, set *models.ContentSet) (*sync.Plan, error) {
	previous, err := s.store.LoadMetadata(ctx)
	if err != nil {
		return nil, err
	}

	return sync.BuildPlan(set, previous)
}

// Apply diffs the prepared set and writes the plan plus the new metadata
// snapshot transactionally. With write-back enabled, the canonical course
// files are rewritten afterwards.
func (s *Service) Apply(ctx context.Context, set *models.ContentSet) (*sync.Plan, error) {
	plan, err := s.Plan(ctx, set)
	if err != nil {
		return nil, err
	}

	if plan.IsEmpty() {
		s.logger.Info("content already in sync, nothing to apply")
		return plan, nil
	}

	metadata := sync.MetadataFromSet(set)
	metadata.Merge(plan.Carried)
	if err := s.store.Apply(ctx, plan, metadata); err != nil {
		return nil, err
	}

	if s.cfg.WriteBack {
		for _, course := range set.Courses {
			if err := WriteCourseFile(s.cfg.CoursesDir, course); err != nil {
				return nil, err
			}
		}
	}

	return plan, nil
}

// CourseByKey loads and canonicalizes a single course from the authoring
// directory.
func (s *Service) CourseByKey(key string) (*models.Course, error) {
	courses, err := LoadCoursesDir(s.cfg.CoursesDir)
	if err != nil {
		return nil, err
	}

	for _, course := range courses {
		if course.Key != key {
			continue
		}
		if err := course.Canonicalize(); err != nil {
			return nil, err
		}
		course.RefreshFingerprints()
		return course, nil
	}

	return nil, fmt.Errorf("course %q: %w", key, ErrCourseNotFound)
}

// ErrCourseNotFound is returned when a requested course key has no authoring
// file.
var ErrCourseNotFound = errors.New("course not found")
