package telemetry

import "testing"

func window(i, herbivores, carnivores, eaten int) WindowStats {
	return WindowStats{
		WindowEndMS:     float64(i+1) * 1000,
		Tick:            (i + 1) * 60,
		SimulationStats: SimulationStats{Herbivores: herbivores, Carnivores: carnivores, Animals: herbivores + carnivores},
		Eaten:           eaten,
	}
}

func hasBookmark(bookmarks []Bookmark, t BookmarkType) bool {
	for _, b := range bookmarks {
		if b.Type == t {
			return true
		}
	}
	return false
}

func TestBookmarkPredationSpike(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := range 5 {
		bd.Check(window(i, 20, 4, 1))
	}

	got := bd.Check(window(5, 20, 4, 4))
	if !hasBookmark(got, BookmarkPredationSpike) {
		t.Fatalf("bookmarks = %v, want predation_spike", got)
	}
	if got[0].Tick != 360 || got[0].ElapsedMS != 6000 {
		t.Errorf("bookmark at tick %d / %v ms, want 360 / 6000", got[0].Tick, got[0].ElapsedMS)
	}
}

func TestBookmarkHerbivoreCrash(t *testing.T) {
	tests := []struct {
		name      string
		peak, now int
		want      bool
	}{
		{"large drop", 20, 10, true},
		{"small drop", 20, 16, false},
		{"few animals lost", 4, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd := NewBookmarkDetector(10)
			for i := range 5 {
				bd.Check(window(i, tt.peak, 3, 0))
			}
			got := bd.Check(window(5, tt.now, 3, 0))
			if hasBookmark(got, BookmarkHerbivoreCrash) != tt.want {
				t.Errorf("bookmarks = %v, want crash %v", got, tt.want)
			}
		})
	}
}

func TestBookmarkCrashResetsPeak(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(window(0, 20, 3, 0))
	bd.Check(window(1, 20, 3, 0))
	if !hasBookmark(bd.Check(window(2, 10, 3, 0)), BookmarkHerbivoreCrash) {
		t.Fatal("first crash not reported")
	}
	if hasBookmark(bd.Check(window(3, 10, 3, 0)), BookmarkHerbivoreCrash) {
		t.Error("crash reported twice for the same drop")
	}
}

func TestBookmarkCarnivoreRecovery(t *testing.T) {
	tests := []struct {
		name     string
		low, now int
		want     bool
	}{
		{"from one", 1, 3, true},
		{"from zero", 0, 3, true},
		{"not low enough", 2, 6, false},
		{"not recovered", 1, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd := NewBookmarkDetector(10)
			for i := range 3 {
				bd.Check(window(i, 20, tt.low, 0))
			}
			got := bd.Check(window(3, 20, tt.now, 0))
			if hasBookmark(got, BookmarkCarnivoreRecovery) != tt.want {
				t.Errorf("bookmarks = %v, want recovery %v", got, tt.want)
			}
		})
	}
}

func TestBookmarkStableEcosystemFiresOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)
	var fired []int
	for i := range 12 {
		if hasBookmark(bd.Check(window(i, 30, 6, 0)), BookmarkStableEcosystem) {
			fired = append(fired, i)
		}
	}
	if len(fired) != 1 || fired[0] != 8 {
		t.Errorf("stable_ecosystem fired at windows %v, want [8]", fired)
	}
}

func TestBookmarkStableNeedsBothGroups(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := range 12 {
		if got := bd.Check(window(i, 30, 1, 0)); hasBookmark(got, BookmarkStableEcosystem) {
			t.Fatalf("stable_ecosystem at window %d with one carnivore", i)
		}
	}
}
