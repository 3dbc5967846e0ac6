package memory

import (
	"context"
	"errors"
	"testing"

	"dogslife-quiz/internal/domain"
)

func TestQuestionStoreAssignsIDsAndFilters(t *testing.T) {
	ctx := context.Background()
	store := NewQuestionStore(SampleQuestions()...)

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != len(SampleQuestions()) {
		t.Fatalf("expected %d questions, got %d", len(SampleQuestions()), len(all))
	}
	for i, q := range all {
		if q.ID != int64(i+1) {
			t.Fatalf("expected sequential ids, got %d at %d", q.ID, i)
		}
	}

	trainer, _ := store.ListByCategory(ctx, "Trainerprüfung")
	if len(trainer) != 3 {
		t.Fatalf("expected 3 trainer questions, got %d", len(trainer))
	}
	none, _ := store.ListByCategory(ctx, "Unbekannt")
	if len(none) != 0 {
		t.Fatalf("expected empty category, got %d", len(none))
	}
}

func TestQuestionStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewQuestionStore(SampleQuestions()[0])

	first, _ := store.ListAll(ctx)
	first[0].AllAnswers[0] = "mutated"

	second, _ := store.ListAll(ctx)
	if second[0].AllAnswers[0] != "Gähnen" {
		t.Fatalf("store leaked internal slice: %v", second[0].AllAnswers)
	}
}

func TestQuestionStoreUpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewQuestionStore()

	q := SampleQuestions()[1]
	saved, err := store.Upsert(ctx, q)
	if err != nil || saved.ID != 1 {
		t.Fatalf("insert via upsert: %+v %v", saved, err)
	}

	saved.Text = "Leinenpflicht innerorts?"
	updated, err := store.Upsert(ctx, saved)
	if err != nil || updated.Text != "Leinenpflicht innerorts?" {
		t.Fatalf("update: %+v %v", updated, err)
	}

	if _, err := store.Upsert(ctx, domain.Question{ID: 99}); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}

	if err := store.DeleteByID(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.DeleteByID(ctx, 1); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
