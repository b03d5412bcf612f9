package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mkkalpana/text-morph/internal/domain/analysis"
)

type fakeHistoryRepo struct {
	saved []*domain.Record
}

func (f *fakeHistoryRepo) Save(_ context.Context, rec *domain.Record) error {
	rec.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, rec)
	return nil
}

func (f *fakeHistoryRepo) Latest(_ context.Context, userID int64, limit int) ([]*domain.Record, error) {
	var out []*domain.Record
	for i := len(f.saved) - 1; i >= 0 && len(out) < limit; i-- {
		if f.saved[i].UserID == userID {
			out = append(out, f.saved[i])
		}
	}
	return out, nil
}

type fakeArtifactStore struct {
	keys         []string
	contentTypes []string
}

func (f *fakeArtifactStore) UploadBytes(_ context.Context, key string, _ []byte, contentType string) (string, error) {
	f.keys = append(f.keys, key)
	f.contentTypes = append(f.contentTypes, contentType)
	return "http://store/" + key, nil
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func newService(repo *fakeHistoryRepo, store domain.ArtifactStore) *Service {
	return &Service{
		Repo:         repo,
		Artifacts:    store,
		Clock:        fixedClock{at: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		MaxFileSize:  10 * 1024 * 1024,
		AllowedTypes: []string{"txt", "pdf", "docx"},
	}
}

func TestAnalyzeTextPersistsRecord(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newService(repo, nil)

	res, err := svc.AnalyzeText(context.Background(), AnalyzeTextCommand{
		UserID: 42,
		Text:   "The cat sat on the mat. It was happy.",
	})
	require.NoError(t, err)
	require.Len(t, repo.saved, 1)

	rec := repo.saved[0]
	assert.Equal(t, int64(42), rec.UserID)
	assert.Nil(t, rec.FileName)
	assert.Equal(t, domain.TypeText, rec.AnalysisType)
	assert.Equal(t, res.FleschKincaidGrade, rec.FleschKincaidGradeLevel)
	assert.Equal(t, res.GunningFogIndex, rec.GunningFogIndex)
	assert.Equal(t, res.SMOGIndex, rec.SMOGIndex)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), rec.CreatedAt)
}

func TestAnalyzeTextRejectsShortInput(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newService(repo, nil)

	_, err := svc.AnalyzeText(context.Background(), AnalyzeTextCommand{UserID: 1, Text: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.saved, "failed analyses must not be recorded")
}

func TestAnalyzeFileHappyPath(t *testing.T) {
	repo := &fakeHistoryRepo{}
	store := &fakeArtifactStore{}
	svc := newService(repo, store)

	res, err := svc.AnalyzeFile(context.Background(), AnalyzeFileCommand{
		UserID:      7,
		Filename:    "essay.txt",
		ContentType: "text/plain",
		Data:        []byte("Reading is a habit worth keeping. Some books take a while to finish."),
	})
	require.NoError(t, err)
	assert.Greater(t, res.WordCount, 0)

	require.Len(t, repo.saved, 1)
	rec := repo.saved[0]
	require.NotNil(t, rec.FileName)
	assert.Equal(t, "essay.txt", *rec.FileName)
	assert.Equal(t, domain.TypeFile, rec.AnalysisType)

	require.Len(t, store.keys, 1)
	assert.Contains(t, store.keys[0], "7/")
	assert.Contains(t, store.keys[0], "essay.txt")
	assert.Equal(t, "text/plain", store.contentTypes[0])
}

func TestAnalyzeFileTooLarge(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newService(repo, nil)
	svc.MaxFileSize = 16

	_, err := svc.AnalyzeFile(context.Background(), AnalyzeFileCommand{
		UserID:   1,
		Filename: "big.txt",
		Data:     []byte("this payload is larger than sixteen bytes"),
	})
	assert.ErrorIs(t, err, domain.ErrPayloadTooLarge)
	assert.Empty(t, repo.saved)
}

func TestAnalyzeFileUnsupportedExtension(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newService(repo, nil)

	_, err := svc.AnalyzeFile(context.Background(), AnalyzeFileCommand{
		UserID:   1,
		Filename: "malware.exe",
		Data:     []byte("does not matter"),
	})
	require.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "txt, pdf, docx")
	assert.Empty(t, repo.saved)
}

func TestAnalyzeFileWithoutArtifactStore(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newService(repo, nil)

	_, err := svc.AnalyzeFile(context.Background(), AnalyzeFileCommand{
		UserID:      1,
		Filename:    "essay.txt",
		ContentType: "text/plain",
		Data:        []byte("A nil artifact store simply skips the archive step entirely."),
	})
	require.NoError(t, err)
	assert.Len(t, repo.saved, 1)
}

func TestHistoryReturnsNewestFirstPerUser(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newService(repo, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.AnalyzeText(ctx, AnalyzeTextCommand{
			UserID: 5,
			Text:   "The cat sat on the mat. It was happy.",
		})
		require.NoError(t, err)
	}
	_, err := svc.AnalyzeText(ctx, AnalyzeTextCommand{
		UserID: 9,
		Text:   "The cat sat on the mat. It was happy.",
	})
	require.NoError(t, err)

	recs, err := svc.History(ctx, 5, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Greater(t, recs[0].ID, recs[1].ID)
	for _, rec := range recs {
		assert.Equal(t, int64(5), rec.UserID)
	}
}
