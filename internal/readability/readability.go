// Package readability computes statistical readability metrics for plain text.
//
// Tokenization uses prose's punkt-style segmenter rather than naive
// split-on-period, so abbreviations and decimal points do not break
// sentence counting.
package readability

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	prose "github.com/jdkato/prose/v2"
	"github.com/mtso/syllables"

	domain "github.com/mkkalpana/text-morph/internal/domain/analysis"
)

const (
	minTextLength = 10
	previewLen    = 200
	wordsPerMin   = 200.0
)

// Analyze tokenizes text and produces the full readability report.
// Deterministic: same input always yields the same Result.
func Analyze(text string) (*domain.Result, error) {
	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n < minTextLength {
		return nil, fmt.Errorf("%w: got %d characters", domain.ErrInvalidInput, n)
	}

	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("tokenizing text: %w", err)
	}

	sentenceCount := len(doc.Sentences())

	var (
		wordCount     int
		syllableTotal int
		complexWords  int // 3+ syllables
	)
	for _, tok := range doc.Tokens() {
		if !isAlphabetic(tok.Text) {
			continue
		}
		wordCount++
		n := syllables.In(strings.ToLower(tok.Text))
		if n < 1 {
			n = 1
		}
		syllableTotal += n
		if n >= 3 {
			complexWords++
		}
	}

	if sentenceCount == 0 || wordCount == 0 {
		return nil, fmt.Errorf("%w: no sentences or alphabetic words detected", domain.ErrInvalidInput)
	}

	words := float64(wordCount)
	sents := float64(sentenceCount)

	fleschEase := 206.835 - 1.015*(words/sents) - 84.6*(float64(syllableTotal)/words)
	fleschGrade := 0.39*(words/sents) + 11.8*(float64(syllableTotal)/words) - 15.59
	gunningFog := 0.4 * ((words / sents) + 100*(float64(complexWords)/words))
	smog := 1.0430*math.Sqrt(float64(complexWords)*(30/sents)) + 3.1291

	level, color := ClassifyComplexity(fleschEase)

	return &domain.Result{
		WordCount:         wordCount,
		SentenceCount:     sentenceCount,
		CharacterCount:    countNonSpace(text),
		AvgSentenceLength: round2(words / sents),

		FleschReadingEase:  round1(fleschEase),
		FleschKincaidGrade: round1(fleschGrade),
		GunningFogIndex:    round1(gunningFog),
		SMOGIndex:          round1(smog),

		ComplexityLevel:          level,
		ComplexityColor:          color,
		FleschInterpretation:     InterpretFlesch(fleschEase),
		GradeLevelInterpretation: InterpretGrade(fleschGrade),

		ReadingTimeMinutes: math.Max(0.5, round1(words/wordsPerMin)),
		TextPreview:        preview(text),
	}, nil
}

// ClassifyComplexity maps a Flesch Reading Ease score to a complexity band
// and its dashboard color. Band lower bounds (70, 30) are inclusive.
func ClassifyComplexity(fleschEase float64) (domain.ComplexityLevel, string) {
	switch {
	case fleschEase >= 70:
		return domain.ComplexityBeginner, "#28a745"
	case fleschEase >= 30:
		return domain.ComplexityIntermediate, "#ffc107"
	default:
		return domain.ComplexityAdvanced, "#dc3545"
	}
}

// InterpretFlesch maps a Flesch Reading Ease score to its standard band.
func InterpretFlesch(score float64) string {
	switch {
	case score >= 90:
		return "Very Easy (5th grade)"
	case score >= 80:
		return "Easy (6th grade)"
	case score >= 70:
		return "Fairly Easy (7th grade)"
	case score >= 60:
		return "Standard (8th-9th grade)"
	case score >= 50:
		return "Fairly Difficult (10th-12th grade)"
	case score >= 30:
		return "Difficult (College)"
	default:
		return "Very Difficult (Graduate)"
	}
}

// InterpretGrade maps a Flesch-Kincaid grade to a schooling level.
func InterpretGrade(grade float64) string {
	switch {
	case grade <= 6:
		return "Elementary School"
	case grade <= 8:
		return "Middle School"
	case grade <= 12:
		return "High School"
	case grade <= 16:
		return "College"
	default:
		return "Graduate Level"
	}
}

func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func countNonSpace(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLen {
		return text
	}
	return string(runes[:previewLen]) + "..."
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
