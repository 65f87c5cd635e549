package assets

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"content-sync/core/storage"
	"content-sync/feature/content/models"
)

// RenameError reports a failed object rename.
type RenameError struct {
	From string
	To   string
	Err  error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("failed to rename object %q to %q: %v", e.From, e.To, e.Err)
}

func (e *RenameError) Unwrap() error { return e.Err }

// Renamer renames entity images in object storage to their canonical names.
// The store has no native move, so a rename is a server-side copy followed by
// a remove of the old object.
type Renamer struct {
	client storage.Client
	bucket string
	log    *zap.Logger
}

// NewRenamer creates a Renamer operating on the given bucket.
func NewRenamer(client storage.Client, bucket string, log *zap.Logger) *Renamer {
	return &Renamer{client: client, bucket: bucket, log: log}
}

// CanonicalFileName returns the name the entity's image must carry: the
// entity-derived stem with the current file's extension preserved. The second
// return is false when the entity has no image.
func CanonicalFileName(entity models.WithImage) (string, bool) {
	current, ok := entity.CurrentImageFileName()
	if !ok {
		return "", false
	}
	return entity.CanonicalImageStem() + filepath.Ext(current), true
}

// Rename moves the entity's stored image to its canonical name and updates the
// entity's reference. A missing image or an already-canonical name is a no-op,
// so repeated runs converge.
func (r *Renamer) Rename(ctx context.Context, entity models.WithImage) error {
	current, ok := entity.CurrentImageFileName()
	if !ok {
		return nil
	}

	target, _ := CanonicalFileName(entity)
	if target == current {
		return nil
	}

	from := path.Join(entity.ImageDir(), current)
	to := path.Join(entity.ImageDir(), target)

	_, err := r.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: r.bucket, Object: to},
		minio.CopySrcOptions{Bucket: r.bucket, Object: from},
	)
	if err != nil {
		return &RenameError{From: from, To: to, Err: err}
	}

	if err := r.client.RemoveObject(ctx, r.bucket, from, minio.RemoveObjectOptions{}); err != nil {
		return &RenameError{From: from, To: to, Err: err}
	}

	entity.ReplaceImageFileName(target)
	r.log.Debug("renamed stored image", zap.String("from", from), zap.String("to", to))

	return nil
}

// RenameAll renames every image in the content set: course and question images
// per course, then bundle and icon images.
func (r *Renamer) RenameAll(ctx context.Context, set *models.ContentSet) error {
	for _, course := range set.Courses {
		if err := r.Rename(ctx, course); err != nil {
			return err
		}
		for _, question := range course.Questions {
			if err := r.Rename(ctx, question); err != nil {
				return err
			}
		}
	}

	for _, bundle := range set.Bundles {
		if err := r.Rename(ctx, bundle); err != nil {
			return err
		}
	}

	for _, icon := range set.Icons {
		if err := r.Rename(ctx, icon); err != nil {
			return err
		}
	}

	return nil
}
