package event

import (
	"encoding/json"
	"fmt"
)

// Payload returns the event's payload as T. In-process publishers hand over the typed
// struct directly; payloads rebuilt from JSON arrive as maps and are converted.
func Payload[T any](evt Event) (T, error) {
	if v, ok := evt.Payload.(T); ok {
		return v, nil
	}
	var out T
	if evt.Payload == nil {
		return out, fmt.Errorf("event %s has no payload", evt.Type)
	}
	data, err := json.Marshal(evt.Payload)
	if err != nil {
		return out, fmt.Errorf("event %s payload: %w", evt.Type, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("event %s payload: %w", evt.Type, err)
	}
	return out, nil
}
