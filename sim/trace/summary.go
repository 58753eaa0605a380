package trace

// TraceSummary aggregates per-place entry/exit/drop counts from a
// SimulationTrace.
type TraceSummary struct {
	TotalEvents  int
	EnteredCount int
	ExitedCount  int
	DroppedCount int
	UniquePlaces int
	PlaceCounts  map[string]int // place name → total events recorded there
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		PlaceCounts: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	for _, e := range st.Events {
		switch e.Kind {
		case "ENTERED":
			summary.EnteredCount++
		case "EXITED":
			summary.ExitedCount++
		case "DROPPED_BY":
			summary.DroppedCount++
		}
		summary.PlaceCounts[e.PlaceName]++
	}

	summary.UniquePlaces = len(summary.PlaceCounts)

	return summary
}
