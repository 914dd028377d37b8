package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/amishk599/jobdigest/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordThenRecent(t *testing.T) {
	s := newTestStore(t)

	ranAt := time.Date(2026, 10, 19, 7, 0, 0, 0, time.UTC)
	rec := model.RunRecord{RanAt: ranAt, Fetched: 12, Delivered: 9, Status: 202}
	if err := s.Record(rec); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 run, got %d", len(got))
	}
	r := got[0]
	if r.ID == 0 {
		t.Error("expected an assigned ID")
	}
	if !r.RanAt.Equal(ranAt) || r.Fetched != 12 || r.Delivered != 9 || r.Status != 202 || r.Err != "" {
		t.Errorf("unexpected run: %+v", r)
	}
}

func TestRecentNewestFirstAndLimited(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 10, 1, 7, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := model.RunRecord{RanAt: base.Add(time.Duration(i) * 24 * time.Hour), Delivered: i}
		if err := s.Record(rec); err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
	}

	got, err := s.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(got))
	}
	for i, want := range []int{4, 3, 2} {
		if got[i].Delivered != want {
			t.Errorf("got[%d].Delivered = %d, want %d", i, got[i].Delivered, want)
		}
	}
}

func TestRecordKeepsError(t *testing.T) {
	s := newTestStore(t)

	rec := model.RunRecord{RanAt: time.Now(), Status: 401, Err: "HTTP 401: sendgrid rejected message"}
	if err := s.Record(rec); err != nil {
		t.Fatalf("Record: %v", err)
	}
	got, err := s.Recent(1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].Err != rec.Err || got[0].Status != 401 {
		t.Errorf("unexpected run: %+v", got)
	}
}

func TestCleanupRemovesOldKeepsFresh(t *testing.T) {
	s := newTestStore(t)

	if err := s.Record(model.RunRecord{RanAt: time.Now().Add(-60 * 24 * time.Hour), Delivered: 1}); err != nil {
		t.Fatalf("Record old: %v", err)
	}
	if err := s.Record(model.RunRecord{RanAt: time.Now(), Delivered: 2}); err != nil {
		t.Fatalf("Record fresh: %v", err)
	}

	if err := s.Cleanup(30 * 24 * time.Hour); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	got, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].Delivered != 2 {
		t.Errorf("expected only the fresh run to survive, got %+v", got)
	}
}
