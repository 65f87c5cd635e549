package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCourse(key string, questions ...*Question) *Course {
	course := &Course{
		Key:       key,
		Name:      "Mathematics 101",
		ShortName: "Math",
		Questions: questions,
	}
	for _, question := range course.Questions {
		question.SetCourseKey(key)
	}
	return course
}

func TestCourseCanonicalizeValidation(t *testing.T) {
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name    string
		mutate  func(c *Course)
		wantErr string
	}{
		{
			name:   "valid course",
			mutate: func(c *Course) {},
		},
		{
			name:    "missing name",
			mutate:  func(c *Course) { c.Name = "  " },
			wantErr: "key, name and short name must be non-empty",
		},
		{
			name:    "negative price",
			mutate:  func(c *Course) { c.Price = &negative },
			wantErr: "price must be non-negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course := testCourse("math101", testQuestion("math101", "What is 1+1?", "two", "three"))
			tt.mutate(course)

			err := course.Canonicalize()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Reason, tt.wantErr)
		})
	}
}

func TestCourseCanonicalizeDropsBlankAndDuplicateQuestions(t *testing.T) {
	duplicate := testQuestion("math101", "What is 1+1?", "two", "three")
	course := testCourse("math101",
		testQuestion("math101", "What is 1+1?", "two", "three"),
		testQuestion("math101", ""),
		duplicate,
	)

	require.NoError(t, course.Canonicalize())

	require.Len(t, course.Questions, 1)
	assert.Equal(t, "What is 1+1?", course.Questions[0].Text)
}

func TestCourseCanonicalizeIsIdempotent(t *testing.T) {
	course := testCourse("math101",
		testQuestion("math101", "  what is  1+1? ", "two", "three"),
		testQuestion("math101", "What is 2+2?", "four", "five"),
	)

	require.NoError(t, course.Canonicalize())
	course.RefreshFingerprints()
	first := course.Fingerprint()

	require.NoError(t, course.Canonicalize())
	course.RefreshFingerprints()

	assert.Equal(t, first, course.Fingerprint())
}

func TestCourseFingerprintDeterminismAndSensitivity(t *testing.T) {
	build := func() *Course {
		question := testQuestion("math101", "What is 1+1?", "two", "three")
		question.ID = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		for i, option := range question.Options {
			option.ID = uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c" + string(rune('0'+i)))
			option.SetQuestionID(question.ID)
		}
		return testCourse("math101", question)
	}

	a := build()
	b := build()
	require.NoError(t, a.Canonicalize())
	require.NoError(t, b.Canonicalize())
	a.RefreshFingerprints()
	b.RefreshFingerprints()

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)

	// A question edit must bubble up through the course fingerprint.
	b.Questions[0].Text = "What is 1+2?"
	b.RefreshFingerprints()
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestCourseFingerprintDistinguishesNumericFields(t *testing.T) {
	// Year, order and questions-per-test are all optional shorts; the same
	// value held by a different field must still change the encoding.
	five := int16(5)
	perTest := uint16(5)

	byYear := testCourse("math101")
	byYear.Year = &five
	byOrder := testCourse("math101")
	byOrder.Order = &five
	byPerTest := testCourse("math101")
	byPerTest.QuestionsPerTest = &perTest

	courses := []*Course{byYear, byOrder, byPerTest}
	seen := make(map[string]bool)
	for _, course := range courses {
		require.NoError(t, course.Canonicalize())
		course.RefreshFingerprints()
		assert.False(t, seen[course.Fingerprint()])
		seen[course.Fingerprint()] = true
	}
	assert.Len(t, seen, 3)
}

func TestCourseFingerprintTracksTopicReferences(t *testing.T) {
	// Topics hash into the question that references them, and from there into
	// the course.
	course := testCourse("math101", testQuestion("math101", "What is 1+1?", "two", "three"))
	require.NoError(t, course.Canonicalize())
	course.RefreshFingerprints()
	before := course.Fingerprint()

	course.Questions[0].Topic = NewTopic("math101", "Arithmetic")
	require.NoError(t, course.Questions[0].Topic.Canonicalize())
	course.Questions[0].RefreshFingerprints()

	// The question fingerprint moves, and with it the course one.
	course.RefreshFingerprint()
	assert.NotEqual(t, before, course.Fingerprint())
}

func TestCourseTopicsAndSourcesAreDistinctAndSorted(t *testing.T) {
	first := testQuestion("math101", "What is 1+1?", "two", "three")
	first.Topic = NewTopic("math101", "Arithmetic")
	second := testQuestion("math101", "What is 2+2?", "four", "five")
	second.Topic = NewTopic("math101", "Arithmetic")
	third := testQuestion("math101", "What is a set?", "a collection", "a number")
	third.Topic = NewTopic("math101", "Algebra")

	course := testCourse("math101", first, second, third)
	require.NoError(t, course.Canonicalize())

	topics := course.Topics()
	require.Len(t, topics, 2)
	assert.Equal(t, "math101::Algebra", topics[0].Key())
	assert.Equal(t, "math101::Arithmetic", topics[1].Key())

	// All three questions share the same exam source.
	sources := course.Sources()
	require.Len(t, sources, 1)
	assert.Equal(t, "math101::exam::June::2024-06-15::A", sources[0].Key())
}

func TestCourseReplaceQuestion(t *testing.T) {
	question := testQuestion("math101", "What is 1+1?", "two", "three")
	course := testCourse("math101", question)
	require.NoError(t, course.Canonicalize())
	course.RefreshFingerprints()
	before := course.Fingerprint()

	replacement := testQuestion("math101", "What is 1+3?", "four", "five")
	replacement.ID = question.ID
	for _, option := range replacement.Options {
		option.SetQuestionID(replacement.ID)
	}

	require.NoError(t, course.ReplaceQuestion(replacement))

	assert.Equal(t, "What is 1+3?", course.QuestionByID(question.ID).Text)
	assert.NotEqual(t, before, course.Fingerprint())

	missing := testQuestion("math101", "Unrelated?", "yes", "no")
	assert.Error(t, course.ReplaceQuestion(missing))
}

func TestContentSetFlattening(t *testing.T) {
	courseA := testCourse("math101", testQuestion("math101", "What is 1+1?", "two", "three"))
	courseB := testCourse("bio201", testQuestion("bio201", "What is a cell?", "a unit of life", "a battery"))
	courseB.Questions[0].Topic = NewTopic("bio201", "Cells")

	set := &ContentSet{
		Courses: []*Course{courseA, courseB},
		Bundles: []*Bundle{{Key: "stem", Name: "STEM", Discount: decimal.NewFromInt(10)}},
		Icons:   []*Icon{{Key: "star", ImageFileName: "star.png"}},
	}
	for _, course := range set.Courses {
		require.NoError(t, course.Canonicalize())
	}

	assert.Len(t, set.Questions(), 2)
	assert.Len(t, set.Options(), 4)
	assert.Len(t, set.Topics(), 1)
	assert.Len(t, set.Sources(), 2)
}

func TestNewCourseFromRawRoundTrip(t *testing.T) {
	price := decimal.NewFromFloat(19.90)
	correct := true
	raw := RawCourse{
		Name:      "Mathematics 101",
		ShortName: "Math",
		Price:     &price,
		Questions: []RawQuestion{
			{
				Text:  "What is 1+1?",
				Topic: "Arithmetic",
				Explanation: &RawExplanation{
					Text: "Basic addition.",
					By:   "alice",
					Date: time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
				},
				Source: RawSource{Type: "self_assessment"},
				Options: []RawQuestionOption{
					{Text: "two", Correct: &correct},
					{Text: "three"},
				},
			},
		},
	}

	course := NewCourse("math101", raw)
	require.NoError(t, course.Canonicalize())
	course.RefreshFingerprints()

	require.Len(t, course.Questions, 1)
	question := course.Questions[0]
	assert.Equal(t, "math101", question.CourseKey())
	assert.NotEqual(t, uuid.Nil, question.ID)
	assert.Equal(t, question.ID, question.Options[0].QuestionID())

	// References get assigned from authoring order when absent.
	assert.Equal(t, uint16(1), question.Options[0].Reference)

	out := course.ToRaw()
	require.Len(t, out.Questions, 1)
	assert.Equal(t, question.ID, *out.Questions[0].ID)
	assert.Equal(t, "Arithmetic", out.Questions[0].Topic)
	assert.Equal(t, "self_assessment", out.Questions[0].Source.Type)
	require.Len(t, out.Questions[0].Options, 2)
	assert.NotNil(t, out.Questions[0].Options[0].ID)
}
