package analysis

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mkkalpana/text-morph/internal/application"
	domain "github.com/mkkalpana/text-morph/internal/domain/analysis"
	"github.com/mkkalpana/text-morph/internal/extract"
	"github.com/mkkalpana/text-morph/internal/readability"
)

// Service implements the analysis use-cases: validate the request, extract
// text when the input is file-based, run the readability analyzer, persist
// the durable projection and return the full report.
// Stateless between requests; safe for concurrent use.
type Service struct {
	Repo         domain.HistoryRepository
	Artifacts    domain.ArtifactStore // optional; nil disables archiving
	Clock        application.Clock
	MaxFileSize  int64
	AllowedTypes []string
}

// AnalyzeTextCommand is the direct-text path.
type AnalyzeTextCommand struct {
	UserID int64
	Text   string
}

// AnalyzeFileCommand is the upload path.
type AnalyzeFileCommand struct {
	UserID      int64
	Filename    string
	ContentType string
	Data        []byte
}

// AnalyzeText runs the analyzer on raw text and records the history row.
func (s *Service) AnalyzeText(ctx context.Context, cmd AnalyzeTextCommand) (*domain.Result, error) {
	result, err := readability.Analyze(cmd.Text)
	if err != nil {
		return nil, err
	}

	rec := domain.NewRecord(cmd.UserID, nil, domain.TypeText, result, s.Clock.Now())
	if err := s.Repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("saving analysis history: %w", err)
	}
	return result, nil
}

// AnalyzeFile enforces the upload constraints, extracts text from the
// document and runs the same pipeline as AnalyzeText. The raw upload is
// archived to object storage when a store is configured; archiving failures
// do not fail the analysis.
func (s *Service) AnalyzeFile(ctx context.Context, cmd AnalyzeFileCommand) (*domain.Result, error) {
	if int64(len(cmd.Data)) > s.MaxFileSize {
		return nil, fmt.Errorf("%w: maximum size is %.1fMB",
			domain.ErrPayloadTooLarge, float64(s.MaxFileSize)/(1024*1024))
	}
	if err := s.checkExtension(cmd.Filename); err != nil {
		return nil, err
	}

	text, err := extract.Extract(cmd.Data, cmd.Filename, cmd.ContentType)
	if err != nil {
		return nil, err
	}

	result, err := readability.Analyze(text)
	if err != nil {
		return nil, err
	}

	name := cmd.Filename
	rec := domain.NewRecord(cmd.UserID, &name, domain.TypeFile, result, s.Clock.Now())
	if err := s.Repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("saving analysis history: %w", err)
	}

	if s.Artifacts != nil {
		key := fmt.Sprintf("%d/%s-%s", cmd.UserID, uuid.New().String(), filepath.Base(cmd.Filename))
		ct := cmd.ContentType
		if ct == "" {
			ct = mime.TypeByExtension(filepath.Ext(cmd.Filename))
		}
		if _, err := s.Artifacts.UploadBytes(ctx, key, cmd.Data, ct); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to archive upload")
		}
	}

	return result, nil
}

// History returns the newest records for a user, newest first.
func (s *Service) History(ctx context.Context, userID int64, limit int) ([]*domain.Record, error) {
	return s.Repo.Latest(ctx, userID, limit)
}

func (s *Service) checkExtension(filename string) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	for _, allowed := range s.AllowedTypes {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w: .%s (allowed: %s)",
		domain.ErrUnsupportedFormat, ext, strings.Join(s.AllowedTypes, ", "))
}
