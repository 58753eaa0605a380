package trace

import (
	"testing"
)

func TestSimulationTrace_RecordEvent_AppendsRecord(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})

	st.RecordEvent(EventRecord{
		CustomerID: 1,
		Kind:       "ENTERED",
		PlaceKind:  "QUEUE",
		PlaceName:  "Queue",
		Time:       1000,
	})

	if len(st.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(st.Events))
	}
	if st.Events[0].CustomerID != 1 {
		t.Errorf("expected customer ID 1, got %d", st.Events[0].CustomerID)
	}
	if st.Events[0].Kind != "ENTERED" {
		t.Errorf("expected ENTERED, got %s", st.Events[0].Kind)
	}
}

func TestSimulationTrace_Disabled_DropsRecords(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelNone})

	st.RecordEvent(EventRecord{CustomerID: 1, Kind: "ENTERED", PlaceName: "Queue"})

	if len(st.Events) != 0 {
		t.Fatalf("expected 0 events with tracing disabled, got %d", len(st.Events))
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})

	st.RecordEvent(EventRecord{CustomerID: 1, Kind: "ENTERED", PlaceName: "Queue", Time: 0})
	st.RecordEvent(EventRecord{CustomerID: 1, Kind: "EXITED", PlaceName: "Queue", Time: 1})
	st.RecordEvent(EventRecord{CustomerID: 2, Kind: "DROPPED_BY", PlaceName: "Queue", Time: 2})

	if len(st.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(st.Events))
	}
	if st.Events[0].Kind != "ENTERED" || st.Events[1].Kind != "EXITED" || st.Events[2].Kind != "DROPPED_BY" {
		t.Error("event order not preserved")
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"events", true},
		{"", true}, // empty defaults to none
		{"detailed", false},
		{"foobar", false},
		{"NONE", false}, // case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}
