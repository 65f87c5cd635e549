package textfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Trim And Collapse", "  option  1 ", "option 1"},
		{"Whitespace Before Period", "some text .", "some text."},
		{"Whitespace Before Question Mark", "is it true ?", "is it true?"},
		{"Whitespace Before Colon", "note :", "note:"},
		{"Curly Quotes", "a “quoted” word", `a "quoted" word`},
		{"Percent Separation", "12.34%", "12.34 %"},
		{"Combined", " test  “text” 12.34% . ", `test "text" 12.34 %.`},
		{"Empty", "", ""},
		{"Only Whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.input))
		})
	}
}

func TestCapitalizeFirst(t *testing.T) {
	assert.Equal(t, "Option 1.", CapitalizeFirst("option 1."))
	assert.Equal(t, "Ñandú", CapitalizeFirst("ñandú"))
	assert.Equal(t, "", CapitalizeFirst(""))
	assert.Equal(t, "Already", CapitalizeFirst("Already"))
}

func TestEnsureTrailingPeriod(t *testing.T) {
	assert.Equal(t, "option 1.", EnsureTrailingPeriod("option 1"))
	assert.Equal(t, "option 1.", EnsureTrailingPeriod("option 1."))
	assert.Equal(t, "", EnsureTrailingPeriod(""))
}

func TestRemoveEndPeriod(t *testing.T) {
	assert.Equal(t, "Topic 1", RemoveEndPeriod("Topic 1."))
	assert.Equal(t, "Topic 1", RemoveEndPeriod("Topic 1"))
}
