package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPredationSpike    BookmarkType = "predation_spike"
	BookmarkCarnivoreRecovery BookmarkType = "carnivore_recovery"
	BookmarkHerbivoreCrash    BookmarkType = "herbivore_crash"
	BookmarkStableEcosystem   BookmarkType = "stable_ecosystem"
)

const (
	stableWindowsForBookmark = 5 // consecutive low-variance windows
	stableLookback           = 4
	stableMaxCVSquared       = 0.04 // CV < 0.2
)

// Bookmark marks a notable moment of a run.
type Bookmark struct {
	Type        BookmarkType `json:"type"`
	ElapsedMS   float64      `json:"elapsed_ms"`
	Tick        int          `json:"tick"`
	Description string       `json:"description"`
}

// LogValue implements slog.LogValuer for structured logging.
func (b Bookmark) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", string(b.Type)),
		slog.Float64("elapsed_ms", b.ElapsedMS),
		slog.Int("tick", b.Tick),
		slog.String("description", b.Description),
	)
}

// BookmarkDetector watches stats windows for notable moments.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	carnivoreMin    int
	carnivoreMinSet bool
	herbivorePeak   int
	stableWindows   int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	historySize = max(historySize, stableWindowsForBookmark)
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest window and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		for _, check := range []func(WindowStats) *Bookmark{
			bd.checkPredationSpike,
			bd.checkCarnivoreRecovery,
			bd.checkHerbivoreCrash,
			bd.checkStableEcosystem,
		} {
			if b := check(stats); b != nil {
				bookmarks = append(bookmarks, *b)
			}
		}
	}

	bd.addToHistory(stats)

	if !bd.carnivoreMinSet || stats.Carnivores < bd.carnivoreMin {
		bd.carnivoreMin = stats.Carnivores
		bd.carnivoreMinSet = true
	}
	bd.herbivorePeak = max(bd.herbivorePeak, stats.Herbivores)

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns the history oldest first.
func (bd *BookmarkDetector) recent() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	out := make([]WindowStats, 0, bd.historySize)
	out = append(out, bd.history[bd.historyIdx:]...)
	return append(out, bd.history[:bd.historyIdx]...)
}

func bookmarkAt(t BookmarkType, stats WindowStats, format string, args ...any) *Bookmark {
	return &Bookmark{
		Type:        t,
		ElapsedMS:   stats.WindowEndMS,
		Tick:        stats.Tick,
		Description: fmt.Sprintf(format, args...),
	}
}

func (bd *BookmarkDetector) checkPredationSpike(stats WindowStats) *Bookmark {
	history := bd.recent()
	if len(history) < 3 || stats.Eaten < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Eaten
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 || float64(stats.Eaten) <= avg*2 {
		return nil
	}
	return bookmarkAt(BookmarkPredationSpike, stats,
		"%d kills in one window, %.1fx the average %.2f", stats.Eaten, float64(stats.Eaten)/avg, avg)
}

func (bd *BookmarkDetector) checkCarnivoreRecovery(stats WindowStats) *Bookmark {
	if !bd.carnivoreMinSet || bd.carnivoreMin > 1 {
		return nil
	}

	threshold := max(3, bd.carnivoreMin*3)
	if stats.Carnivores < threshold {
		return nil
	}
	oldMin := bd.carnivoreMin
	bd.carnivoreMin = stats.Carnivores
	return bookmarkAt(BookmarkCarnivoreRecovery, stats,
		"carnivores recovered from %d to %d", oldMin, stats.Carnivores)
}

func (bd *BookmarkDetector) checkHerbivoreCrash(stats WindowStats) *Bookmark {
	if bd.herbivorePeak == 0 {
		return nil
	}

	drop := 1 - float64(stats.Herbivores)/float64(bd.herbivorePeak)
	if drop <= 0.3 || stats.Herbivores > bd.herbivorePeak-3 {
		return nil
	}
	oldPeak := bd.herbivorePeak
	bd.herbivorePeak = stats.Herbivores
	return bookmarkAt(BookmarkHerbivoreCrash, stats,
		"herbivores crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Herbivores)
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	if stats.Herbivores < 5 || stats.Carnivores < 2 {
		bd.stableWindows = 0
		return nil
	}

	history := bd.recent()
	if len(history) < stableLookback {
		return nil
	}
	history = history[len(history)-stableLookback:]

	herbivores := make([]float64, len(history))
	carnivores := make([]float64, len(history))
	for i, h := range history {
		herbivores[i] = float64(h.Herbivores)
		carnivores[i] = float64(h.Carnivores)
	}

	if cvSquared(herbivores) < stableMaxCVSquared && cvSquared(carnivores) < stableMaxCVSquared {
		bd.stableWindows++
	} else {
		bd.stableWindows = 0
	}

	if bd.stableWindows != stableWindowsForBookmark {
		return nil
	}
	return bookmarkAt(BookmarkStableEcosystem, stats,
		"stable with %d herbivores and %d carnivores over %d windows",
		stats.Herbivores, stats.Carnivores, stableWindowsForBookmark)
}

// cvSquared returns the squared coefficient of variation, using the
// population variance.
func cvSquared(xs []float64) float64 {
	mean, variance := stat.PopMeanVariance(xs, nil)
	if mean == 0 {
		return 0
	}
	return variance / (mean * mean)
}
