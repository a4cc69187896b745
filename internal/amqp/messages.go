package amqp

import (
	"encoding/json"
	"time"
)

// SyncRequest asks the worker to refresh the spreadsheet mirror. The mirror
// is a full overwrite, so EntryID and Reason are informational: they say what
// triggered the request, not what to sync.
type SyncRequest struct {
	EntryID   int64     `json:"entryId"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSyncRequest(entryID int64, reason string) *SyncRequest {
	return &SyncRequest{
		EntryID:   entryID,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

func (m *SyncRequest) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SyncRequestFromJSON(data []byte) (*SyncRequest, error) {
	var msg SyncRequest
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
