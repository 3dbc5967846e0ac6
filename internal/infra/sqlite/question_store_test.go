package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"dogslife-quiz/internal/domain"
	"dogslife-quiz/internal/infra/memory"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *QuestionStore {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "questions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestQuestionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTemp(t)

	require.NoError(t, store.InsertMany(ctx, memory.SampleQuestions()))

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)
	require.Equal(t, int64(1), all[0].ID)
	require.Equal(t, []string{"Gähnen", "Hecheln"}, all[0].CorrectAnswers)
	require.Equal(t, domain.MultipleChoice, all[0].Type)

	trainer, err := store.ListByCategory(ctx, "Trainerprüfung")
	require.NoError(t, err)
	require.Len(t, trainer, 3)
}

func TestQuestionStoreUpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	store := openTemp(t)

	q := memory.SampleQuestions()[1]
	saved, err := store.Upsert(ctx, q)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	saved.CorrectAnswers = []string{"Nein"}
	_, err = store.Upsert(ctx, saved)
	require.NoError(t, err)

	got, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Nein"}, got[0].CorrectAnswers)

	_, err = store.Upsert(ctx, domain.Question{ID: 999, Text: "x", Type: domain.SingleChoice})
	require.ErrorIs(t, err, domain.ErrQuestionNotFound)

	require.NoError(t, store.DeleteByID(ctx, saved.ID))
	require.ErrorIs(t, store.DeleteByID(ctx, saved.ID), domain.ErrQuestionNotFound)
}
