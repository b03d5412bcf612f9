package readability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mkkalpana/text-morph/internal/domain/analysis"
)

func TestAnalyzeSimpleText(t *testing.T) {
	res, err := Analyze("The cat sat on the mat. It was happy.")
	require.NoError(t, err)

	assert.Equal(t, 2, res.SentenceCount)
	assert.GreaterOrEqual(t, res.WordCount, 8)
	assert.Equal(t, domain.ComplexityBeginner, res.ComplexityLevel)
	assert.Equal(t, "#28a745", res.ComplexityColor)
	assert.Equal(t, 0.5, res.ReadingTimeMinutes)
	assert.Equal(t, "The cat sat on the mat. It was happy.", res.TextPreview)
	assert.Greater(t, res.FleschReadingEase, 70.0)
	assert.Greater(t, res.AvgSentenceLength, 0.0)
}

func TestAnalyzeRejectsShortText(t *testing.T) {
	cases := []string{
		"",
		"short",
		"   hi    ",   // under 10 after trimming
		"Héé. Héé.",   // 9 characters, 13 bytes
		"日本語のテキスト。", // 9 characters, multi-byte
	}
	for _, text := range cases {
		_, err := Analyze(text)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "text=%q", text)
	}
}

func TestAnalyzeRejectsNonAlphabeticText(t *testing.T) {
	_, err := Analyze("1234 5678 9012 !!!")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCharacterCountExcludesWhitespace(t *testing.T) {
	res, err := Analyze("One two three. Four five six.")
	require.NoError(t, err)
	// 29 characters total, 5 of them whitespace
	assert.Equal(t, 24, res.CharacterCount)
}

func TestReadingTimeFloor(t *testing.T) {
	// far fewer than 100 words still reports half a minute
	res, err := Analyze("A very tiny sample sentence.")
	require.NoError(t, err)
	assert.Equal(t, 0.5, res.ReadingTimeMinutes)
}

func TestReadingTimeScalesWithLength(t *testing.T) {
	// 500 one-syllable words at 200 wpm is 2.5 minutes
	text := strings.TrimSpace(strings.Repeat("cat dog fish bird mouse ", 100)) + "."
	res, err := Analyze(text)
	require.NoError(t, err)
	assert.Equal(t, 500, res.WordCount)
	assert.Equal(t, 2.5, res.ReadingTimeMinutes)
}

func TestPreviewTruncation(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", 60)) + "."
	require.Greater(t, len(long), 200)

	res, err := Analyze(long)
	require.NoError(t, err)
	assert.LessOrEqual(t, len([]rune(res.TextPreview)), 203)
	assert.True(t, strings.HasSuffix(res.TextPreview, "..."))
	assert.Equal(t, long[:200], res.TextPreview[:200])
}

func TestClassifyComplexityBands(t *testing.T) {
	cases := []struct {
		score float64
		level domain.ComplexityLevel
		color string
	}{
		{95, domain.ComplexityBeginner, "#28a745"},
		{70, domain.ComplexityBeginner, "#28a745"}, // lower bound inclusive
		{69.9, domain.ComplexityIntermediate, "#ffc107"},
		{30, domain.ComplexityIntermediate, "#ffc107"}, // lower bound inclusive
		{29.9, domain.ComplexityAdvanced, "#dc3545"},
		{-20, domain.ComplexityAdvanced, "#dc3545"},
	}
	for _, tc := range cases {
		level, color := ClassifyComplexity(tc.score)
		assert.Equal(t, tc.level, level, "score=%v", tc.score)
		assert.Equal(t, tc.color, color, "score=%v", tc.score)
	}
}

func TestInterpretFlesch(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{95, "Very Easy (5th grade)"},
		{85, "Easy (6th grade)"},
		{75, "Fairly Easy (7th grade)"},
		{65, "Standard (8th-9th grade)"},
		{55, "Fairly Difficult (10th-12th grade)"},
		{40, "Difficult (College)"},
		{10, "Very Difficult (Graduate)"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, InterpretFlesch(tc.score), "score=%v", tc.score)
	}
}

func TestInterpretGrade(t *testing.T) {
	cases := []struct {
		grade float64
		want  string
	}{
		{3, "Elementary School"},
		{6, "Elementary School"},
		{7.5, "Middle School"},
		{10, "High School"},
		{14, "College"},
		{18, "Graduate Level"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, InterpretGrade(tc.grade), "grade=%v", tc.grade)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	const text = "Reading is a habit worth keeping. Some books take a while to finish."
	a, err := Analyze(text)
	require.NoError(t, err)
	b, err := Analyze(text)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
