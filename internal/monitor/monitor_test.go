package monitor

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRecord() Record {
	return Record{
		Name:     "cpu-high",
		Message:  "cpu is high @webhook-GardenerChat @all",
		Priority: Int64(1),
		Query:    "avg(last_5m):avg:system.cpu.user{*} > 90",
		Tags:     []string{"svc", "team:core"},
		Type:     "metric alert",
		Options: map[string]any{
			"thresholds": map[string]any{"critical": 90.0},
		},
	}
}

func TestIndex(t *testing.T) {
	t.Run("keys by name", func(t *testing.T) {
		a := Record{Name: "a", Query: "q1"}
		b := Record{Name: "b", Query: "q2"}

		index := Index([]Record{a, b})

		require.Len(t, index, 2)
		assert.Equal(t, "q1", index["a"].Query)
		assert.Equal(t, "q2", index["b"].Query)
	})

	t.Run("last duplicate wins", func(t *testing.T) {
		index := Index([]Record{
			{Name: "a", Query: "first"},
			{Name: "a", Query: "second"},
		})

		require.Len(t, index, 1)
		assert.Equal(t, "second", index["a"].Query)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Index(nil))
	})
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, Names([]Record{{Name: "b"}, {Name: "a"}}))
}

func TestDiffers(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Record)
		want   bool
	}{
		{
			name:   "identical",
			mutate: func(r *Record) {},
			want:   false,
		},
		{
			name:   "tags in different order",
			mutate: func(r *Record) { r.Tags = []string{"team:core", "svc"} },
			want:   false,
		},
		{
			name:   "duplicate tag",
			mutate: func(r *Record) { r.Tags = append(r.Tags, r.Tags[0]) },
			want:   false,
		},
		{
			name:   "options only",
			mutate: func(r *Record) { r.Options = map[string]any{"notify_no_data": true} },
			want:   false,
		},
		{
			name:   "remote id only",
			mutate: func(r *Record) { r.ID = Int64(42) },
			want:   false,
		},
		{
			name:   "query",
			mutate: func(r *Record) { r.Query = "avg:x>10" },
			want:   true,
		},
		{
			name:   "message",
			mutate: func(r *Record) { r.Message = "other" },
			want:   true,
		},
		{
			name:   "priority changed",
			mutate: func(r *Record) { r.Priority = Int64(3) },
			want:   true,
		},
		{
			name:   "priority cleared",
			mutate: func(r *Record) { r.Priority = nil },
			want:   true,
		},
		{
			name:   "tag added",
			mutate: func(r *Record) { r.Tags = append(r.Tags, "env:prod") },
			want:   true,
		},
		{
			name:   "type",
			mutate: func(r *Record) { r.Type = "query alert" },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			declared := baseRecord()
			remote := baseRecord()
			tt.mutate(&remote)

			assert.Equal(t, tt.want, Differs(declared, remote))
			if tt.want {
				assert.NotEmpty(t, Diff(declared, remote))
			} else {
				assert.Empty(t, Diff(declared, remote))
			}
		})
	}
}

func TestDiffers_NilAndEmptyTags(t *testing.T) {
	declared := Record{Name: "a", Tags: nil}
	remote := Record{Name: "a", Tags: []string{}}

	assert.False(t, Differs(declared, remote))
}

func TestDiffers_TagsAreASet(t *testing.T) {
	declared := Record{Name: "a", Tags: []string{"svc", "proj", "svc"}}
	remote := Record{Name: "a", Tags: []string{"proj", "svc"}}

	assert.False(t, Differs(declared, remote))
	assert.Empty(t, ChangedFields(declared, remote))
	assert.Equal(t, []string{"svc", "proj", "svc"}, declared.Tags)
}

func TestDiff_ShowsBothSides(t *testing.T) {
	declared := Record{Name: "a", Query: "avg:x>5"}
	remote := Record{Name: "a", Query: "avg:x>10"}

	diff := Diff(declared, remote)

	assert.Contains(t, diff, "avg:x>5")
	assert.Contains(t, diff, "avg:x>10")
}

func TestRecord_Clone(t *testing.T) {
	orig := baseRecord()
	orig.ID = Int64(7)

	clone := orig.Clone()
	clone.Tags[0] = "changed"
	*clone.Priority = 5
	*clone.ID = 8
	clone.Options["thresholds"].(map[string]any)["critical"] = 1.0

	assert.Equal(t, "svc", orig.Tags[0])
	assert.Equal(t, int64(1), *orig.Priority)
	assert.Equal(t, int64(7), *orig.ID)
	assert.Equal(t, 90.0, orig.Options["thresholds"].(map[string]any)["critical"])
}

func TestRecord_Payload(t *testing.T) {
	r := baseRecord()
	r.ID = Int64(7)

	payload := r.Payload()

	assert.False(t, payload.HasID())
	assert.True(t, r.HasID())
	assert.Equal(t, int64(7), r.RemoteID())
	assert.Equal(t, int64(0), payload.RemoteID())
}

func TestRecord_EscalationMessage(t *testing.T) {
	r := Record{}
	_, ok := r.EscalationMessage()
	assert.False(t, ok)

	r.Options = map[string]any{EscalationMessageKey: ""}
	_, ok = r.EscalationMessage()
	assert.False(t, ok)

	r.Options = map[string]any{EscalationMessageKey: "still broken"}
	msg, ok := r.EscalationMessage()
	assert.True(t, ok)
	assert.Equal(t, "still broken", msg)
}

func TestRecord_HasTag(t *testing.T) {
	r := baseRecord()
	assert.True(t, r.HasTag("svc"))
	assert.False(t, r.HasTag("sv"))
}

func TestAPIError(t *testing.T) {
	throttled := &APIError{StatusCode: http.StatusTooManyRequests, Errors: []string{"slow down"}}
	assert.True(t, throttled.RateLimited())
	assert.Equal(t, "status 429: slow down", throttled.Error())
	assert.Equal(t, []string{"slow down"}, throttled.Messages())

	cause := errors.New("connection reset")
	transport := &APIError{Err: cause}
	assert.False(t, transport.RateLimited())
	assert.ErrorIs(t, transport, cause)
	assert.Equal(t, []string{"connection reset"}, transport.Messages())
	assert.Equal(t, "request failed: connection reset", transport.Error())

	bare := &APIError{StatusCode: http.StatusBadRequest}
	assert.Equal(t, []string{"status 400"}, bare.Messages())
}

func TestChangedFields(t *testing.T) {
	declared := baseRecord()
	remote := baseRecord()
	assert.Empty(t, ChangedFields(declared, remote))

	remote.Query = "other"
	remote.Priority = nil
	remote.Tags = []string{"only-one"}
	remote.Options = map[string]any{"ignored": true}
	assert.Equal(t, []string{"priority", "query", "tags"}, ChangedFields(declared, remote))
}
