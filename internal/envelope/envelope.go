// Package envelope normalizes the wrapper shapes the Thimar backend uses
// around list and record payloads. Endpoints variously return a bare array,
// {"data": [...]}, {"payload": [...]}, or {"payload": {"data": [...]}};
// callers of this package always get back a plain, possibly-empty slice and
// never need to inspect the wrapper themselves.
package envelope

import (
	"bytes"
	"encoding/json"

	"thimar/internal/logger"
)

// listEnvelope captures every known list wrapper at once. Fields are raw so
// that a wrapper holding a non-array value is detected rather than half-decoded.
type listEnvelope struct {
	Data    json.RawMessage `json:"data"`
	Payload json.RawMessage `json:"payload"`
}

// Records extracts the record array from a raw list response body.
// Extraction precedence: bare array, payload.data, data, payload. The first
// structurally valid array wins. A body matching none of the shapes yields an
// empty slice; a malformed envelope must never take down a list screen.
func Records(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return []json.RawMessage{}
	}

	if records, ok := asArray(raw); ok {
		return records
	}

	var env listEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Get().Warnw("unexpected response envelope", "body_prefix", prefix(raw))
		return []json.RawMessage{}
	}

	if len(env.Payload) > 0 {
		var nested listEnvelope
		if err := json.Unmarshal(env.Payload, &nested); err == nil && len(nested.Data) > 0 {
			if records, ok := asArray(nested.Data); ok {
				return records
			}
			// payload.data present but not an array: empty, not a partial result.
			logger.Get().Warnw("payload.data is not an array", "body_prefix", prefix(raw))
			return []json.RawMessage{}
		}
	}

	if records, ok := asArray(env.Data); ok {
		return records
	}
	if records, ok := asArray(env.Payload); ok {
		return records
	}

	logger.Get().Warnw("unexpected response envelope", "body_prefix", prefix(raw))
	return []json.RawMessage{}
}

// DecodeList normalizes a list body and decodes each record into T.
// Records that fail to decode are skipped with a diagnostic.
func DecodeList[T any](raw json.RawMessage) []T {
	records := Records(raw)
	out := make([]T, 0, len(records))
	for _, rec := range records {
		var item T
		if err := json.Unmarshal(rec, &item); err != nil {
			logger.Get().Warnw("skipping undecodable record", "error", err)
			continue
		}
		out = append(out, item)
	}
	return out
}

// Record unwraps a single-object response body: payload if present, then
// data, then the body itself.
func Record(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return raw
	}

	var env listEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return raw
	}
	if isObject(env.Payload) {
		return env.Payload
	}
	if isObject(env.Data) {
		return env.Data
	}
	return raw
}

// asArray reports whether raw is a JSON array and returns its elements.
func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, true
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// prefix returns a short, loggable slice of the body for diagnostics.
func prefix(raw json.RawMessage) string {
	const max = 120
	if len(raw) > max {
		return string(raw[:max])
	}
	return string(raw)
}
