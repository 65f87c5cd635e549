package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"content-sync/feature/content/models"
	"content-sync/feature/content/store"
	"content-sync/feature/content/sync"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	return gormDB, mock
}

func canonicalSet(t *testing.T) *models.ContentSet {
	t.Helper()

	date := models.NewDate(2024, time.June, 15)

	question := models.NewQuestion("math101", uuid.Nil, "What is 1+1?")
	question.Source = models.NewSource("math101", models.SourceExam, "June", &date, "")
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
	require.NoError(t, course.Canonicalize())
	course.RefreshFingerprints()

	return set
}

func TestStoreApplyFirstSync(t *testing.T) {
	db, mock := newTestDB(t)
	set := canonicalSet(t)

	plan, err := sync.BuildPlan(set, sync.NewMetadata())
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `courses`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `questions`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `question_options`").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO `sources`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `sync_metadata`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO `sync_metadata`").WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	s := store.NewStore(db, zap.NewNop())
	err = s.Apply(context.Background(), plan, sync.MetadataFromSet(set))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreApplyDeletionsOnly(t *testing.T) {
	db, mock := newTestDB(t)

	previous := sync.NewMetadata()
	previous.Topics["math101::Obsolete"] = "0000"

	plan, err := sync.BuildPlan(&models.ContentSet{}, previous)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `topics`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `sync_metadata`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := store.NewStore(db, zap.NewNop())
	err = s.Apply(context.Background(), plan, sync.NewMetadata())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreApplyRollsBackOnFailure(t *testing.T) {
	db, mock := newTestDB(t)
	set := canonicalSet(t)

	plan, err := sync.BuildPlan(set, sync.NewMetadata())
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `courses`").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	s := store.NewStore(db, zap.NewNop())
	err = s.Apply(context.Background(), plan, sync.MetadataFromSet(set))

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreLoadMetadata(t *testing.T) {
	db, mock := newTestDB(t)

	questionID := uuid.New()
	mock.ExpectQuery("SELECT \\* FROM `sync_metadata`").WillReturnRows(
		sqlmock.NewRows([]string{"collection", "entry_key", "fingerprint"}).
			AddRow("courses", "math101", "aaaa").
			AddRow("questions", questionID.String(), "bbbb").
			AddRow("topics", "math101::Arithmetic", "cccc"),
	)

	s := store.NewStore(db, zap.NewNop())
	metadata, err := s.LoadMetadata(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "aaaa", metadata.Courses["math101"])
	assert.Equal(t, "bbbb", metadata.Questions[questionID])
	assert.Equal(t, "cccc", metadata.Topics["math101::Arithmetic"])
	assert.Empty(t, metadata.Bundles)
}

func TestStoreLoadMetadataRejectsBadQuestionKey(t *testing.T) {
	db, mock := newTestDB(t)

	mock.ExpectQuery("SELECT \\* FROM `sync_metadata`").WillReturnRows(
		sqlmock.NewRows([]string{"collection", "entry_key", "fingerprint"}).
			AddRow("questions", "not-a-uuid", "bbbb"),
	)

	s := store.NewStore(db, zap.NewNop())
	_, err := s.LoadMetadata(context.Background())

	assert.ErrorContains(t, err, "invalid question key")
}
