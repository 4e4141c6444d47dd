package monitor

import (
	"encoding/json"
	"slices"
)

// EscalationMessageKey is the options key Datadog uses for the re-notification message.
const EscalationMessageKey = "escalation_message"

// Record is a single monitor definition, either declared or fetched.
type Record struct {
	// ID is the Datadog monitor id. Only set on remote records.
	ID *int64 `json:"id,omitempty"`

	Name     string   `json:"name"`
	Message  string   `json:"message"`
	Priority *int64   `json:"priority"`
	Query    string   `json:"query"`
	Tags     []string `json:"tags"`
	Type     string   `json:"type"`

	// Options is forwarded verbatim on create and update and never compared.
	Options map[string]any `json:"options,omitempty"`
}

// HasID reports whether the record carries a remote id.
func (r Record) HasID() bool {
	return r.ID != nil
}

// RemoteID returns the remote id or zero when the record was not fetched.
func (r Record) RemoteID() int64 {
	if r.ID == nil {
		return 0
	}
	return *r.ID
}

// HasTag reports whether tag is part of the record's tag set.
func (r Record) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

// EscalationMessage returns options.escalation_message when it is a non-empty string.
func (r Record) EscalationMessage() (string, bool) {
	if r.Options == nil {
		return "", false
	}
	msg, ok := r.Options[EscalationMessageKey].(string)
	if !ok || msg == "" {
		return "", false
	}
	return msg, true
}

// Payload returns the record without its remote id, ready to be sent as a
// create or update body.
func (r Record) Payload() Record {
	out := r.Clone()
	out.ID = nil
	return out
}

// Clone returns a deep copy so that indexed snapshots can't be changed through
// a shared slice or map.
func (r Record) Clone() Record {
	out := r
	if r.ID != nil {
		id := *r.ID
		out.ID = &id
	}
	if r.Priority != nil {
		p := *r.Priority
		out.Priority = &p
	}
	if r.Tags != nil {
		out.Tags = slices.Clone(r.Tags)
	}
	if r.Options != nil {
		out.Options = cloneOptions(r.Options)
	}
	return out
}

// cloneOptions deep-copies an options document through its JSON form, which is
// also the only form Datadog accepts.
func cloneOptions(in map[string]any) map[string]any {
	data, err := json.Marshal(in)
	if err != nil {
		out := make(map[string]any, len(in))
		for k, v := range in {
			out[k] = v
		}
		return out
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return in
	}
	return out
}

// Int64 returns a pointer to v. Handy for priorities and ids in tests and fixtures.
func Int64(v int64) *int64 {
	return &v
}
