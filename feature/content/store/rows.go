package store

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"content-sync/feature/content/models"
)

const tagSeparator = ","

// CourseRow is the relational shape of a course.
type CourseRow struct {
	Key              string           `gorm:"primaryKey;column:key;type:varchar(64)"`
	Name             string           `gorm:"column:name;type:varchar(255)"`
	ShortName        string           `gorm:"column:short_name;type:varchar(64)"`
	Description      string           `gorm:"column:description;type:text"`
	Price            *decimal.Decimal `gorm:"column:price;type:decimal(10,2)"`
	Tags             string           `gorm:"column:tags;type:text"`
	ImageFileName    string           `gorm:"column:image_file_name;type:varchar(255)"`
	Year             *int16           `gorm:"column:year"`
	Order            *int16           `gorm:"column:sort_order"`
	QuestionsPerTest *uint16          `gorm:"column:questions_per_test"`
	Fingerprint      string           `gorm:"column:fingerprint;type:char(64)"`
}

func (CourseRow) TableName() string { return "courses" }

func courseRow(c *models.Course) CourseRow {
	return CourseRow{
		Key:              c.Key,
		Name:             c.Name,
		ShortName:        c.ShortName,
		Description:      c.Description,
		Price:            c.Price,
		Tags:             strings.Join(c.Tags, tagSeparator),
		ImageFileName:    c.ImageFileName,
		Year:             c.Year,
		Order:            c.Order,
		QuestionsPerTest: c.QuestionsPerTest,
		Fingerprint:      c.Fingerprint(),
	}
}

// QuestionRow is the relational shape of a question. The explanation is
// embedded since it cannot outlive its question; topic and source are key
// references into their own tables.
type QuestionRow struct {
	ID              string     `gorm:"primaryKey;column:id;type:char(36)"`
	CourseKey       string     `gorm:"column:course_key;type:varchar(64);index"`
	Text            string     `gorm:"column:text;type:text"`
	ExplanationText string     `gorm:"column:explanation_text;type:text"`
	ExplanationBy   string     `gorm:"column:explanation_by;type:varchar(255)"`
	ExplanationDate *time.Time `gorm:"column:explanation_date"`
	TopicKey        *string    `gorm:"column:topic_key;type:varchar(255)"`
	SourceKey       string     `gorm:"column:source_key;type:varchar(255)"`
	Tags            string     `gorm:"column:tags;type:text"`
	ImageFileName   string     `gorm:"column:image_file_name;type:varchar(255)"`
	Fingerprint     string     `gorm:"column:fingerprint;type:char(64)"`
}

func (QuestionRow) TableName() string { return "questions" }

func questionRow(q *models.Question) QuestionRow {
	row := QuestionRow{
		ID:            q.ID.String(),
		CourseKey:     q.CourseKey(),
		Text:          q.Text,
		Tags:          strings.Join(q.Tags, tagSeparator),
		ImageFileName: q.ImageFileName,
		Fingerprint:   q.Fingerprint(),
	}

	if q.Explanation != nil {
		row.ExplanationText = q.Explanation.Text
		row.ExplanationBy = q.Explanation.By
		date := q.Explanation.Date
		row.ExplanationDate = &date
	}
	if q.Topic != nil {
		key := q.Topic.Key()
		row.TopicKey = &key
	}
	if q.Source != nil {
		row.SourceKey = q.Source.Key()
	}

	return row
}

// OptionRow is the relational shape of an answer option.
type OptionRow struct {
	ID          string `gorm:"primaryKey;column:id;type:char(36)"`
	QuestionID  string `gorm:"column:question_id;type:char(36);index"`
	Text        string `gorm:"column:text;type:text"`
	Correct     bool   `gorm:"column:correct;type:tinyint(1)"`
	Reference   uint16 `gorm:"column:reference"`
	Fingerprint string `gorm:"column:fingerprint;type:char(64)"`
}

func (OptionRow) TableName() string { return "question_options" }

func optionRow(o *models.QuestionOption) OptionRow {
	return OptionRow{
		ID:          o.ID.String(),
		QuestionID:  o.QuestionID().String(),
		Text:        o.Text,
		Correct:     o.Correct,
		Reference:   o.Reference,
		Fingerprint: o.Fingerprint(),
	}
}

// TopicRow is the relational shape of a topic.
type TopicRow struct {
	Key         string `gorm:"primaryKey;column:key;type:varchar(255)"`
	CourseKey   string `gorm:"column:course_key;type:varchar(64);index"`
	Name        string `gorm:"column:name;type:varchar(255)"`
	Fingerprint string `gorm:"column:fingerprint;type:char(64)"`
}

func (TopicRow) TableName() string { return "topics" }

func topicRow(t *models.Topic) TopicRow {
	return TopicRow{
		Key:         t.Key(),
		CourseKey:   t.CourseKey(),
		Name:        t.Name,
		Fingerprint: t.Fingerprint(),
	}
}

// SourceRow is the relational shape of a source.
type SourceRow struct {
	Key         string  `gorm:"primaryKey;column:key;type:varchar(255)"`
	CourseKey   string  `gorm:"column:course_key;type:varchar(64);index"`
	Kind        string  `gorm:"column:kind;type:varchar(32)"`
	Name        string  `gorm:"column:name;type:varchar(255)"`
	Date        *string `gorm:"column:date;type:char(10)"`
	Variant     string  `gorm:"column:variant;type:varchar(64)"`
	Fingerprint string  `gorm:"column:fingerprint;type:char(64)"`
}

func (SourceRow) TableName() string { return "sources" }

func sourceRow(s *models.Source) SourceRow {
	row := SourceRow{
		Key:         s.Key(),
		CourseKey:   s.CourseKey(),
		Kind:        string(s.Kind),
		Name:        s.Name,
		Variant:     s.Variant,
		Fingerprint: s.Fingerprint(),
	}
	if s.Date != nil {
		date := s.Date.String()
		row.Date = &date
	}
	return row
}

// BundleRow is the relational shape of a bundle.
type BundleRow struct {
	Key           string          `gorm:"primaryKey;column:key;type:varchar(64)"`
	Name          string          `gorm:"column:name;type:varchar(255)"`
	CourseKeys    string          `gorm:"column:course_keys;type:text"`
	Discount      decimal.Decimal `gorm:"column:discount;type:decimal(10,2)"`
	ImageFileName string          `gorm:"column:image_file_name;type:varchar(255)"`
	Fingerprint   string          `gorm:"column:fingerprint;type:char(64)"`
}

func (BundleRow) TableName() string { return "bundles" }

func bundleRow(b *models.Bundle) BundleRow {
	return BundleRow{
		Key:           b.Key,
		Name:          b.Name,
		CourseKeys:    strings.Join(b.CourseKeys, tagSeparator),
		Discount:      b.Discount,
		ImageFileName: b.ImageFileName,
		Fingerprint:   b.Fingerprint(),
	}
}

// IconRow is the relational shape of an icon.
type IconRow struct {
	Key           string           `gorm:"primaryKey;column:key;type:varchar(64)"`
	IsInitial     bool             `gorm:"column:is_initial;type:tinyint(1)"`
	Description   string           `gorm:"column:description;type:text"`
	Price         *decimal.Decimal `gorm:"column:price;type:decimal(10,2)"`
	ImageFileName string           `gorm:"column:image_file_name;type:varchar(255)"`
	Fingerprint   string           `gorm:"column:fingerprint;type:char(64)"`
}

func (IconRow) TableName() string { return "icons" }

func iconRow(i *models.Icon) IconRow {
	return IconRow{
		Key:           i.Key,
		IsInitial:     i.IsInitial,
		Description:   i.Description,
		Price:         i.Price,
		ImageFileName: i.ImageFileName,
		Fingerprint:   i.Fingerprint(),
	}
}

// MetadataRow is one key→fingerprint pair of the last successful sync.
type MetadataRow struct {
	Collection  string `gorm:"primaryKey;column:collection;type:varchar(32)"`
	EntryKey    string `gorm:"primaryKey;column:entry_key;type:varchar(255)"`
	Fingerprint string `gorm:"column:fingerprint;type:char(64)"`
}

func (MetadataRow) TableName() string { return "sync_metadata" }
