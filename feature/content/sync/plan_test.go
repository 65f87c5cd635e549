package sync

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-sync/core/syncdiff"
	"content-sync/feature/content/models"
)

func buildSet(t *testing.T) *models.ContentSet {
	t.Helper()

	date := models.NewDate(2024, time.June, 15)

	question := models.NewQuestion("math101", uuid.Nil, "What is 1+1?")
	question.Source = models.NewSource("math101", models.SourceExam, "June", &date, "")
	question.Topic = models.NewTopic("math101", "Arithmetic")
	question.Options = []*models.QuestionOption{
		models.NewQuestionOption(uuid.Nil, question.ID, "two", true, 1, false),
		models.NewQuestionOption(uuid.Nil, question.ID, "three", false, 2, false),
	}

	course := &models.Course{
		Key:       "math101",
		Name:      "Mathematics 101",
		ShortName: "Math",
		Questions: []*models.Question{question},
	}
	question.SetCourseKey("math101")

	set := &models.ContentSet{Courses: []*models.Course{course}}
	for _, c := range set.Courses {
		require.NoError(t, c.Canonicalize())
		c.RefreshFingerprints()
	}

	return set
}

func TestBuildPlanFirstSyncSendsEverything(t *testing.T) {
	set := buildSet(t)

	plan, err := BuildPlan(set, NewMetadata())
	require.NoError(t, err)

	assert.Len(t, plan.Courses.ForSync, 1)
	assert.Len(t, plan.Questions.ForSync, 1)
	assert.Len(t, plan.Options.ForSync, 2)
	assert.Len(t, plan.Topics.ForSync, 1)
	assert.Len(t, plan.Sources.ForSync, 1)
	assert.Empty(t, plan.Courses.ForDeletion)
	assert.False(t, plan.IsEmpty())
}

func TestBuildPlanUnchangedContentIsEmpty(t *testing.T) {
	set := buildSet(t)

	plan, err := BuildPlan(set, MetadataFromSet(set))
	require.NoError(t, err)

	assert.True(t, plan.IsEmpty())
}

func TestBuildPlanDetectsEditsAndRemovals(t *testing.T) {
	set := buildSet(t)
	previous := MetadataFromSet(set)

	// A key synced before but gone from the batch must be scheduled for
	// deletion.
	previous.Topics["math101::Obsolete"] = "0000"

	set.Courses[0].Questions[0].Text = "What is 1+2?"
	set.Courses[0].RefreshFingerprints()

	plan, err := BuildPlan(set, previous)
	require.NoError(t, err)

	require.Len(t, plan.Questions.ForSync, 1)
	assert.Equal(t, "What is 1+2?", plan.Questions.ForSync[0].Text)
	assert.Len(t, plan.Courses.ForSync, 1)
	assert.Empty(t, plan.Options.ForSync)
	assert.Equal(t, []string{"math101::Obsolete"}, plan.Topics.ForDeletion)
}

func TestBuildPlanCarriesSkippedSubtreesForward(t *testing.T) {
	set := buildSet(t)
	previous := MetadataFromSet(set)

	// The course was synced before but dropped from this batch; its subtree
	// must be neither synced nor deleted.
	broken := set.Courses[0]
	skipped := models.NewSkippedKeys()
	skipped.AddCourse(broken)
	set.Courses = nil
	set.Skipped = skipped

	plan, err := BuildPlan(set, previous)
	require.NoError(t, err)

	assert.True(t, plan.IsEmpty())
	assert.Empty(t, plan.Courses.ForDeletion)
	assert.Empty(t, plan.Questions.ForDeletion)
	assert.Empty(t, plan.Options.ForDeletion)
	assert.Empty(t, plan.Topics.ForDeletion)
	assert.Empty(t, plan.Sources.ForDeletion)

	// The last synced state survives into the next snapshot.
	assert.Equal(t, previous.Courses, plan.Carried.Courses)
	assert.Equal(t, previous.Questions, plan.Carried.Questions)
	assert.Equal(t, previous.Options, plan.Carried.Options)
	assert.Equal(t, previous.Topics, plan.Carried.Topics)
	assert.Equal(t, previous.Sources, plan.Carried.Sources)
}

func TestMetadataMergeKeepsCarriedEntries(t *testing.T) {
	set := buildSet(t)
	snapshot := MetadataFromSet(set)

	carried := NewMetadata()
	carried.Courses["bio201"] = "aaaa"
	carried.Topics["bio201::Cells"] = "bbbb"

	snapshot.Merge(carried)

	assert.Equal(t, "aaaa", snapshot.Courses["bio201"])
	assert.Equal(t, "bbbb", snapshot.Topics["bio201::Cells"])
	assert.Equal(t, set.Courses[0].Fingerprint(), snapshot.Courses["math101"])
}

func TestBuildPlanRejectsDuplicateCourseKeys(t *testing.T) {
	set := buildSet(t)
	other := buildSet(t)
	set.Courses = append(set.Courses, other.Courses[0])

	_, err := BuildPlan(set, NewMetadata())

	var dupErr *syncdiff.DuplicateKeyError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, CollectionCourses, dupErr.Collection)
}

func TestPlanCounts(t *testing.T) {
	set := buildSet(t)

	plan, err := BuildPlan(set, NewMetadata())
	require.NoError(t, err)

	counts := plan.Counts()
	assert.Equal(t, CollectionCounts{ForSync: 1}, counts[CollectionCourses])
	assert.Equal(t, CollectionCounts{ForSync: 2}, counts[CollectionOptions])
}
