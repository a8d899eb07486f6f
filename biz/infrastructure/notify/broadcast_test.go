package notify

import (
	"testing"
)

func TestParseEvent(t *testing.T) {
	raw := map[string]any{
		"id":        "9f2d1c",
		"examId":    "64f0c2",
		"name":      "exam_ended",
		// a JSON round trip delivers numbers as float64
		"timestamp": float64(1757500000),
		"payload": map[string]any{
			"forceSubmitted": float64(12),
			"endedBy":        "teacher-1",
		},
	}

	event, err := ParseEvent(raw)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if event.ExamId != "64f0c2" || event.Name != "exam_ended" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Timestamp != 1757500000 {
		t.Fatalf("timestamp = %d, want 1757500000", event.Timestamp)
	}
}

func TestPayloadString(t *testing.T) {
	event := &Event{Payload: map[string]any{
		"endedBy":        "teacher-1",
		"forceSubmitted": float64(12),
	}}

	if got := event.PayloadString("endedBy"); got != "teacher-1" {
		t.Fatalf("PayloadString(endedBy) = %q", got)
	}
	if got := event.PayloadString("forceSubmitted"); got != "12" {
		t.Fatalf("PayloadString(forceSubmitted) = %q, want \"12\"", got)
	}
	if got := event.PayloadString("missing"); got != "" {
		t.Fatalf("PayloadString(missing) = %q, want empty", got)
	}
}
