package trace

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures every customer event log entry.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior. Enabled by the CLI's
// --debug flag (spec.md §6's DEBUG_ENABLED).
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects event records during a run.
type SimulationTrace struct {
	Config TraceConfig
	Events []EventRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Events: make([]EventRecord, 0),
	}
}

// RecordEvent appends an event record, a no-op if tracing is disabled.
func (st *SimulationTrace) RecordEvent(record EventRecord) {
	if st.Config.Level == TraceLevelNone || st.Config.Level == "" {
		return
	}
	st.Events = append(st.Events, record)
}
