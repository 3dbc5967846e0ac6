package redis

import (
	"testing"
	"time"

	"dogslife-quiz/internal/app"
	"dogslife-quiz/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr), time.Minute)

	store.Put(app.NewSession("s-1", memory.SampleQuestions()[:2], 0))
	if !mr.Exists("quiz:session:s-1") {
		t.Fatalf("expected redis key to be set")
	}
	if ttl := mr.TTL("quiz:session:s-1"); ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %v", ttl)
	}

	store.Delete("s-1")
	if mr.Exists("quiz:session:s-1") {
		t.Fatalf("expected redis key to be removed")
	}
}

func TestSessionStoreSweepClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr), time.Minute)
	store.Put(app.NewSession("s-1", memory.SampleQuestions()[:1], 0))

	time.Sleep(5 * time.Millisecond)
	if n := store.Sweep(time.Millisecond); n != 1 {
		t.Fatalf("expected 1 swept session, got %d", n)
	}
	if _, ok := store.Get("s-1"); ok || mr.Exists("quiz:session:s-1") {
		t.Fatalf("expected session and key removed")
	}
}
