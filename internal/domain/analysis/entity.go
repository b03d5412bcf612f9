package analysis

import (
	"time"
)

// AnalysisType enum
type AnalysisType string

const (
	TypeText AnalysisType = "text"
	TypeFile AnalysisType = "file"
)

// ComplexityLevel enum, derived from Flesch Reading Ease
type ComplexityLevel string

const (
	ComplexityBeginner     ComplexityLevel = "Beginner"
	ComplexityIntermediate ComplexityLevel = "Intermediate"
	ComplexityAdvanced     ComplexityLevel = "Advanced"
)

// Result is the full readability report for a single analysis.
// Immutable once built; every field is set at construction time.
type Result struct {
	WordCount         int     `json:"word_count"`
	SentenceCount     int     `json:"sentence_count"`
	CharacterCount    int     `json:"character_count"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`

	FleschReadingEase  float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade float64 `json:"flesch_kincaid_grade"`
	GunningFogIndex    float64 `json:"gunning_fog_index"`
	SMOGIndex          float64 `json:"smog_index"`

	ComplexityLevel          ComplexityLevel `json:"complexity_level"`
	ComplexityColor          string          `json:"complexity_color"`
	FleschInterpretation     string          `json:"flesch_interpretation"`
	GradeLevelInterpretation string          `json:"grade_level_interpretation"`

	ReadingTimeMinutes float64 `json:"reading_time_minutes"`
	TextPreview        string  `json:"text_preview"`
}

// Record is the durable projection of a Result: only the three grade-level
// metrics are kept, the rest lives in the response only.
type Record struct {
	ID                      int64        `json:"id"`
	UserID                  int64        `json:"-"`
	FileName                *string      `json:"file_name"`
	AnalysisType            AnalysisType `json:"analysis_type"`
	FleschKincaidGradeLevel float64      `json:"flesch_kincaid_grade_level"`
	GunningFogIndex         float64      `json:"gunning_fog_index"`
	SMOGIndex               float64      `json:"smog_index"`
	CreatedAt               time.Time    `json:"created_at"`
}

// NewRecord projects a Result into its persisted subset. fileName is nil for
// direct text analyses.
func NewRecord(userID int64, fileName *string, typ AnalysisType, res *Result, now time.Time) *Record {
	return &Record{
		UserID:                  userID,
		FileName:                fileName,
		AnalysisType:            typ,
		FleschKincaidGradeLevel: res.FleschKincaidGrade,
		GunningFogIndex:         res.GunningFogIndex,
		SMOGIndex:               res.SMOGIndex,
		CreatedAt:               now,
	}
}
