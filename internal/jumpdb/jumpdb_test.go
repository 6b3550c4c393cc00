package jumpdb

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestRankAging mirrors §8 scenario 4 "Jump DB aging": an entry with
// 10 visits, first seen 24h ago, last seen 1h ago ranks at
// 2 * VISIT_BONUS * 10 = 4000 (hours<=24 multiplier x2, days=1 so no
// division); the same entry with last seen 8 days ago instead ranks
// at 10*VISIT_BONUS/4 = 500 (older-than-week multiplier /4).
func TestRankAging(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	db := New(filepath.Join(t.TempDir(), "jump.clifm"), 0, 0)
	db.byPath["/home/u/proj"] = &Entry{
		Path:   "/home/u/proj",
		Visits: 10,
		First:  now.Add(-24 * time.Hour),
		Last:   now.Add(-1 * time.Hour),
	}
	db.order = []string{"/home/u/proj"}

	db.RankAll(RankContext{Now: now})
	got := db.byPath["/home/u/proj"].Rank
	if got != 4000 {
		t.Errorf("recent entry: expected rank 4000, got %d", got)
	}
	if !db.byPath["/home/u/proj"].Keep {
		t.Error("recent entry should be kept")
	}

	db.byPath["/home/u/proj"].Last = now.Add(-8 * 24 * time.Hour)
	db.RankAll(RankContext{Now: now})
	got = db.byPath["/home/u/proj"].Rank
	if got != 500 {
		t.Errorf("aged entry: expected rank 500, got %d", got)
	}
}

func TestVisitCreatesAndIncrements(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	db := New(filepath.Join(t.TempDir(), "jump.clifm"), 0, 0)

	db.Visit("/a", now)
	if len(db.order) != 1 || db.byPath["/a"].Visits != 1 {
		t.Fatalf("expected one new entry with 1 visit")
	}

	db.Visit("/a", now.Add(time.Hour))
	if db.byPath["/a"].Visits != 2 {
		t.Errorf("expected visit count 2, got %d", db.byPath["/a"].Visits)
	}
	if len(db.order) != 1 {
		t.Error("revisit must not create a duplicate entry")
	}
}

func TestBonuses(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	db := New(filepath.Join(t.TempDir(), "jump.clifm"), 0, 0)
	db.Visit("/bookmarked", now.Add(-200*time.Hour))
	db.Visit("/pinned", now.Add(-200*time.Hour))
	db.Visit("/plain", now.Add(-200*time.Hour))

	db.RankAll(RankContext{
		Now:        now,
		Bookmarked: map[string]bool{"/bookmarked": true},
		Pinned:     "/pinned",
	})

	if db.byPath["/bookmarked"].Rank <= db.byPath["/plain"].Rank {
		t.Error("bookmarked entry should outrank plain entry")
	}
	if db.byPath["/pinned"].Rank <= db.byPath["/bookmarked"].Rank {
		t.Error("pinned bonus should exceed bookmark bonus")
	}
	if !db.byPath["/bookmarked"].Keep || !db.byPath["/pinned"].Keep {
		t.Error("bonus-eligible entries should be kept")
	}
}

func TestNormalizeAppliesCeilingAndMinRank(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	db := New(filepath.Join(t.TempDir(), "jump.clifm"), 100, 50)
	db.Visit("/a", now)
	db.Visit("/b", now.Add(-200*time.Hour))
	db.RankAll(RankContext{Now: now})
	db.Normalize()

	total := 0
	for _, p := range db.order {
		total += db.byPath[p].Rank
	}
	if total > db.Ceiling {
		t.Errorf("expected total rank <= ceiling %d, got %d", db.Ceiling, total)
	}
}

func TestPurgeMissingPaths(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	dir := t.TempDir()
	existing := filepath.Join(dir, "exists")
	if err := os.Mkdir(existing, 0o755); err != nil {
		t.Fatal(err)
	}
	db := New(filepath.Join(dir, "jump.clifm"), 0, 0)
	db.Visit(existing, now)
	db.Visit(filepath.Join(dir, "gone"), now)

	removed := db.Purge(-1)
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
}

func TestQueryIntersection(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	db := New(filepath.Join(t.TempDir(), "jump.clifm"), 0, 0)
	db.Visit("/home/user/projects/vfm", now)
	db.Visit("/home/user/downloads", now.Add(-time.Hour))
	db.RankAll(RankContext{Now: now})

	e, ok := db.Query([]string{"proj", "vfm"}, "")
	if !ok || e.Path != "/home/user/projects/vfm" {
		t.Fatalf("expected projects/vfm match, got %+v ok=%v", e, ok)
	}

	if _, ok := db.Query([]string{"nomatch"}, ""); ok {
		t.Error("expected no match for nonexistent query")
	}
}

func TestQueryExcludesCWD(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	db := New(filepath.Join(t.TempDir(), "jump.clifm"), 0, 0)
	db.Visit("/home/user/proj", now)
	db.RankAll(RankContext{Now: now})

	if _, ok := db.Query([]string{"proj"}, "/home/user/proj"); ok {
		t.Error("expected current directory to be excluded from query results")
	}
}

func TestQueryRelativeParentAndChild(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	db := New(filepath.Join(t.TempDir(), "jump.clifm"), 0, 0)
	db.Visit("/home/user", now)
	db.Visit("/home/user/projects/vfm", now.Add(-time.Hour))
	db.RankAll(RankContext{Now: now})

	e, ok := db.QueryRelative([]string{"home"}, "/home/user/projects/vfm", ParentOnly)
	if !ok || e.Path != "/home/user" {
		t.Fatalf("expected parent match /home/user, got %+v ok=%v", e, ok)
	}

	e, ok = db.QueryRelative([]string{"vfm"}, "/home/user", ChildOnly)
	if !ok || e.Path != "/home/user/projects/vfm" {
		t.Fatalf("expected child match, got %+v ok=%v", e, ok)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	path := filepath.Join(t.TempDir(), "jump.clifm")
	db := New(path, 0, 0)
	db.Visit("/a/b", now)
	db.Visit("/c/d", now.Add(-time.Hour))
	db.RankAll(RankContext{Now: now})

	if err := db.Save(); err != nil {
		t.Fatal(err)
	}

	db2 := New(path, 0, 0)
	if err := db2.Load(); err != nil {
		t.Fatal(err)
	}
	if len(db2.order) != 2 {
		t.Fatalf("expected 2 entries after reload, got %d", len(db2.order))
	}
	if db2.byPath["/a/b"].Visits != 1 {
		t.Errorf("visit count lost across round-trip")
	}
}
