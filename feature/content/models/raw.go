package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Raw records mirror the external authoring format. Ids are optional there;
// entities get a generated one when absent. Everything else is passed through
// untouched and cleaned up by canonicalization.

// RawCourse is the authored shape of a course file. The course key is not part
// of the payload; it comes from the file stem.
type RawCourse struct {
	Name             string           `json:"name"`
	ShortName        string           `json:"short_name"`
	Description      string           `json:"description,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	Tags             []string         `json:"tags,omitempty"`
	Image            string           `json:"image,omitempty"`
	Year             *int16           `json:"year,omitempty"`
	Order            *int16           `json:"order,omitempty"`
	QuestionsPerTest *uint16          `json:"questions_per_test,omitempty"`
	Questions        []RawQuestion    `json:"questions"`
}

// RawQuestion is the authored shape of a question.
type RawQuestion struct {
	ID          *uuid.UUID          `json:"id,omitempty"`
	Text        string              `json:"text"`
	Explanation *RawExplanation     `json:"explanation,omitempty"`
	Topic       string              `json:"topic,omitempty"`
	Source      RawSource           `json:"source"`
	Tags        []string            `json:"tags,omitempty"`
	Image       string              `json:"image,omitempty"`
	Options     []RawQuestionOption `json:"options"`
}

// RawExplanation is the authored shape of a question explanation.
type RawExplanation struct {
	Text string    `json:"text"`
	By   string    `json:"by"`
	Date time.Time `json:"date"`
}

// RawSource is the authored shape of a question source.
type RawSource struct {
	Type    string `json:"type"`
	Name    string `json:"name,omitempty"`
	Date    *Date  `json:"date,omitempty"`
	Variant string `json:"variant,omitempty"`
}

// RawQuestionOption is the authored shape of an answer option.
type RawQuestionOption struct {
	ID           *uuid.UUID `json:"id,omitempty"`
	Text         string     `json:"text"`
	Correct      *bool      `json:"correct,omitempty"`
	Reference    uint16     `json:"reference,omitempty"`
	PreserveCase bool       `json:"preserve_case,omitempty"`
}

// RawBundle is the authored shape of a bundle.
type RawBundle struct {
	Key        string          `json:"key"`
	Name       string          `json:"name"`
	CourseKeys []string        `json:"course_keys"`
	Discount   decimal.Decimal `json:"discount"`
	Image      string          `json:"image,omitempty"`
}

// RawIcon is the authored shape of an icon.
type RawIcon struct {
	Key         string           `json:"key"`
	IsInitial   bool             `json:"is_initial,omitempty"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Image       string           `json:"image"`
}

// NewCourse assembles a course entity from its key and raw payload, wiring
// back-references and generating ids where absent. The result is not yet
// canonical and carries no fingerprints.
func NewCourse(key string, raw RawCourse) *Course {
	course := &Course{
		Key:              key,
		Name:             raw.Name,
		ShortName:        raw.ShortName,
		Description:      raw.Description,
		Price:            raw.Price,
		Tags:             raw.Tags,
		ImageFileName:    raw.Image,
		Year:             raw.Year,
		Order:            raw.Order,
		QuestionsPerTest: raw.QuestionsPerTest,
	}

	for _, rawQuestion := range raw.Questions {
		course.Questions = append(course.Questions, newQuestionFromRaw(key, rawQuestion))
	}

	return course
}

func newQuestionFromRaw(courseKey string, raw RawQuestion) *Question {
	id := uuid.Nil
	if raw.ID != nil {
		id = *raw.ID
	}

	question := NewQuestion(courseKey, id, raw.Text)
	question.Tags = raw.Tags
	question.ImageFileName = raw.Image

	if raw.Explanation != nil {
		question.Explanation = NewExplanation(raw.Explanation.Text, raw.Explanation.By, raw.Explanation.Date)
	}
	if raw.Topic != "" {
		question.Topic = NewTopic(courseKey, raw.Topic)
	}
	question.Source = NewSource(courseKey, SourceKind(raw.Source.Type), raw.Source.Name, raw.Source.Date, raw.Source.Variant)

	for index, rawOption := range raw.Options {
		optionID := uuid.Nil
		if rawOption.ID != nil {
			optionID = *rawOption.ID
		}

		reference := rawOption.Reference
		if reference == 0 {
			reference = uint16(index + 1)
		}

		question.Options = append(question.Options, NewQuestionOption(
			optionID,
			question.ID,
			rawOption.Text,
			rawOption.Correct != nil && *rawOption.Correct,
			reference,
			rawOption.PreserveCase,
		))
	}

	return question
}

// NewBundle assembles a bundle entity from its raw payload.
func NewBundle(raw RawBundle) *Bundle {
	return &Bundle{
		Key:           raw.Key,
		Name:          raw.Name,
		CourseKeys:    raw.CourseKeys,
		Discount:      raw.Discount,
		ImageFileName: raw.Image,
	}
}

// NewIcon assembles an icon entity from its raw payload.
func NewIcon(raw RawIcon) *Icon {
	return &Icon{
		Key:           raw.Key,
		IsInitial:     raw.IsInitial,
		Description:   raw.Description,
		Price:         raw.Price,
		ImageFileName: raw.Image,
	}
}

// ToRaw converts a canonical course back into the authoring shape, with all
// generated ids filled in so the next load is stable.
func (c *Course) ToRaw() RawCourse {
	raw := RawCourse{
		Name:             c.Name,
		ShortName:        c.ShortName,
		Description:      c.Description,
		Price:            c.Price,
		Tags:             c.Tags,
		Image:            c.ImageFileName,
		Year:             c.Year,
		Order:            c.Order,
		QuestionsPerTest: c.QuestionsPerTest,
		Questions:        make([]RawQuestion, 0, len(c.Questions)),
	}

	for _, question := range c.Questions {
		raw.Questions = append(raw.Questions, question.toRaw())
	}

	return raw
}

func (q *Question) toRaw() RawQuestion {
	id := q.ID
	raw := RawQuestion{
		ID:      &id,
		Text:    q.Text,
		Tags:    q.Tags,
		Image:   q.ImageFileName,
		Options: make([]RawQuestionOption, 0, len(q.Options)),
	}

	if q.Explanation != nil {
		raw.Explanation = &RawExplanation{
			Text: q.Explanation.Text,
			By:   q.Explanation.By,
			Date: q.Explanation.Date,
		}
	}
	if q.Topic != nil {
		raw.Topic = q.Topic.Name
	}
	if q.Source != nil {
		raw.Source = RawSource{
			Type:    string(q.Source.Kind),
			Name:    q.Source.Name,
			Date:    q.Source.Date,
			Variant: q.Source.Variant,
		}
	}

	for _, option := range q.Options {
		optionID := option.ID
		rawOption := RawQuestionOption{
			ID:           &optionID,
			Text:         option.Text,
			Reference:    option.Reference,
			PreserveCase: option.PreserveCase,
		}
		if option.Correct {
			correct := true
			rawOption.Correct = &correct
		}
		raw.Options = append(raw.Options, rawOption)
	}

	return raw
}
