package events

import (
	"encoding/json"

	"memerender/internal/logging"
)

func logRuntimeEvent(evt Envelope) {
	l := logging.Named("events")
	data, err := json.Marshal(evt.Payload)
	if err != nil {
		l.Error("failed to marshal event payload", "event", evt.Name, "err", err)
		return
	}
	// Image payloads can be megabytes of base64.
	if len(data) > 512 {
		l.Debug("emitted", "event", evt.Name, "id", evt.ID, "bytes", len(data))
		return
	}
	l.Debug("emitted", "event", evt.Name, "id", evt.ID, "payload", string(data))
}
