package amqp

import (
	"testing"
	"time"
)

func TestSyncRequestJSON(t *testing.T) {
	msg := NewSyncRequest(42, "entry_created")
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp not stamped")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := SyncRequestFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.EntryID != 42 || got.Reason != "entry_created" {
		t.Fatalf("round trip = %+v", got)
	}
	if !got.Timestamp.Equal(msg.Timestamp.Truncate(0)) && got.Timestamp.Sub(msg.Timestamp) > time.Second {
		t.Fatalf("timestamp drifted: %v vs %v", got.Timestamp, msg.Timestamp)
	}
}

func TestSyncRequestFromJSONRejectsGarbage(t *testing.T) {
	if _, err := SyncRequestFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
