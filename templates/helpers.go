package templates

import (
	"fmt"

	"xpquest/ledger"
	"xpquest/story"
)

// Status is the read-only view of a pet's progress used by the reports.
type Status struct {
	Level     int
	XP        int
	Threshold int
	TotalXP   int
	Turns     int
	Recent    []story.Turn
}

// NewStatus summarises a saved game, keeping the last recent turns.
func NewStatus(st story.GameState, recent int) Status {
	level := max(st.Level, 1)
	history := st.History
	if recent >= 0 && len(history) > recent {
		history = history[len(history)-recent:]
	}
	return Status{
		Level:     level,
		XP:        st.XP,
		Threshold: level * ledger.XPPerLevel,
		TotalXP:   st.TotalXP,
		Turns:     len(st.History),
		Recent:    history,
	}
}

// ProgressLabel describes how far into the current level a pet is.
type ProgressLabel struct {
	Description string
	Color       string
}

// ProgressStatus returns a ProgressLabel based on the share of the level threshold reached.
func ProgressStatus(xp, threshold int) ProgressLabel {
	pct := Percent(xp, threshold)
	switch {
	case pct >= 80:
		return ProgressLabel{"Almost there", "#a6e22e"} // Lime Green
	case pct >= 50:
		return ProgressLabel{"Growing", "#e6db74"} // Yellow
	case pct >= 20:
		return ProgressLabel{"Learning", "#fd971f"} // Orange
	case pct > 0:
		return ProgressLabel{"Curious", "#66d9ef"} // Blue
	default:
		return ProgressLabel{"Fresh", "#75715e"} // Gray
	}
}

// Percent is xp as a whole percentage of threshold, capped to [0, 100].
func Percent(xp, threshold int) int {
	if threshold <= 0 {
		return 0
	}
	if xp >= threshold {
		return 100
	}
	return max(0, min(100, xp*100/threshold))
}

// ProgressBar renders a fixed-width text bar such as "[#####-----]".
func ProgressBar(xp, threshold, width int) string {
	filled := Percent(xp, threshold) * width / 100
	bar := make([]byte, width)
	for i := range bar {
		if i < filled {
			bar[i] = '#'
		} else {
			bar[i] = '-'
		}
	}
	return fmt.Sprintf("[%s]", bar)
}
