package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"content-sync/feature/content/models"
)

const courseFileExt = ".json"

// LoadCourseFile parses one authored course file. The course key is the file
// stem. Unknown fields are rejected so typos in authoring files surface
// instead of silently dropping data.
func LoadCourseFile(path string) (*models.Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read course file %s: %w", path, err)
	}

	var raw models.RawCourse
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		return nil, &models.MalformedInputError{Source: path, Err: err}
	}

	key := strings.TrimSuffix(filepath.Base(path), courseFileExt)
	return models.NewCourse(key, raw), nil
}

// LoadCoursesDir loads every course file in the directory, sorted by file name
// so the batch is deterministic.
func LoadCoursesDir(dir string) ([]*models.Course, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read courses directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), courseFileExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	courses := make([]*models.Course, 0, len(paths))
	for _, path := range paths {
		course, err := LoadCourseFile(path)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	return courses, nil
}

// WriteCourseFile writes the course back in canonical form, ids included.
func WriteCourseFile(dir string, course *models.Course) error {
	data, err := json.MarshalIndent(course.ToRaw(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode course %s: %w", course.Key, err)
	}
	data = append(data, '\n')

	path := filepath.Join(dir, course.Key+courseFileExt)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write course file %s: %w", path, err)
	}

	return nil
}

// LoadBundlesFile parses the authored bundles file. A missing file simply
// means the batch has no bundles.
func LoadBundlesFile(path string) ([]*models.Bundle, error) {
	var raws []models.RawBundle
	if err := loadOptionalJSON(path, &raws); err != nil {
		return nil, err
	}

	bundles := make([]*models.Bundle, 0, len(raws))
	for _, raw := range raws {
		bundles = append(bundles, models.NewBundle(raw))
	}
	return bundles, nil
}

// LoadIconsFile parses the authored icons file. A missing file simply means
// the batch has no icons.
func LoadIconsFile(path string) ([]*models.Icon, error) {
	var raws []models.RawIcon
	if err := loadOptionalJSON(path, &raws); err != nil {
		return nil, err
	}

	icons := make([]*models.Icon, 0, len(raws))
	for _, raw := range raws {
		icons = append(icons, models.NewIcon(raw))
	}
	return icons, nil
}

func loadOptionalJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return &models.MalformedInputError{Source: path, Err: err}
	}

	return nil
}
