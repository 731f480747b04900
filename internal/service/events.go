package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// EventSender publishes a mutation event. Production wires the kafka
// producer here; tests and broker-less deployments use LogSender.
type EventSender func(ctx context.Context, key string, payload []byte) error

func LogSender(ctx context.Context, key string, payload []byte) error {
	slog.Info("event", "key", key, "payload", string(payload))
	return nil
}

func eventPayload(kind string, fields map[string]any) []byte {
	m := map[string]any{
		"event":      kind,
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
	}
	for k, v := range fields {
		m[k] = v
	}
	payload, _ := json.Marshal(m)
	return payload
}
