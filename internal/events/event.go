package events

import (
	"encoding/json"
	"fmt"
	"io"

	"osint-pivot/internal/models"
)

// Event is one pushed update. Type doubles as the SSE event name.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// NewJobsUpdate wraps a job-set snapshot as an otx_update broadcast
func NewJobsUpdate(jobs map[string]models.JobSnapshot) Event {
	return Event{
		Type: models.ActionOTXUpdate,
		Data: models.Update{Action: models.ActionOTXUpdate, Jobs: jobs},
	}
}

// NewSettingsUpdate wraps the current settings as a settings_update broadcast
func NewSettingsUpdate(s models.Settings) Event {
	return Event{
		Type: models.ActionSettingsUpdate,
		Data: models.Update{Action: models.ActionSettingsUpdate, Settings: &s},
	}
}

// Write encodes event in text/event-stream framing
func Write(w io.Writer, event Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	if event.Type != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", event.Type); err != nil {
			return fmt.Errorf("failed to write event type: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("failed to write event data: %w", err)
	}
	return nil
}
