package advisor_test

import (
	"encoding/json"
	"testing"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/advisor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestExtractBestString(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
		found    bool
	}{
		{"top-level answer", `{"answer":"A","other":"B"}`, "A", true},
		{"priority order beats map order", `{"result":"late","answer":"first"}`, "first", true},
		{"nested under data", `{"data":{"reply":"nested"}}`, "nested", true},
		{"deep arbitrary key", `{"zz":{"inner":{"deep":"found"}}}`, "found", true},
		{"array scanned in order", `{"items":["","second"]}`, "second", true},
		{"bare string", `"just text"`, "just text", true},
		{"empty strings skipped", `{"answer":"  ","message":"real"}`, "real", true},
		{"no strings", `{"count":3,"flags":[true,false]}`, "", false},
		{"null payload", `null`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := advisor.ExtractBestString(decode(t, tt.payload))
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestExtractBestString_NonPriorityKeysSorted(t *testing.T) {
	// Both keys are non-priority; deterministic order must pick "alpha"
	got, found := advisor.ExtractBestString(decode(t, `{"beta":"B","alpha":"A"}`))
	assert.True(t, found)
	assert.Equal(t, "A", got)
}

func TestExtractBestString_CyclicPayload(t *testing.T) {
	// json.Unmarshal can't produce cycles; build one by hand
	m := map[string]any{}
	m["self"] = m

	_, found := advisor.ExtractBestString(m)
	assert.False(t, found)

	m["answer"] = "escape"
	got, found := advisor.ExtractBestString(m)
	assert.True(t, found)
	assert.Equal(t, "escape", got)
}
