package ledger

import (
	"testing"

	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/alexanderramin/examplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_SortedKeysAndSkipsIncomplete(t *testing.T) {
	blob, err := Encode(domain.ProgressData{
		testutil.Date("2026-02-01"): {Completed: true, Confidence: domain.ConfidenceHigh, CompletedAt: fixedNow},
		testutil.Date("2026-01-15"): {Completed: true, Confidence: domain.ConfidenceLow, CompletedAt: fixedNow},
		testutil.Date("2026-01-20"): {Completed: false},
	})
	require.NoError(t, err)
	assert.Equal(t,
		`{"2026-01-15":{"completed":true,"confidence":"low","completedAt":"2026-01-03T18:30:15.123456789Z"},`+
			`"2026-02-01":{"completed":true,"confidence":"high","completedAt":"2026-01-03T18:30:15.123456789Z"}}`,
		string(blob))
}

func TestEncode_Empty(t *testing.T) {
	blob, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(blob))
}

func TestDecode_RecordRules(t *testing.T) {
	tests := []struct {
		name      string
		record    string
		key       string
		wantKept  bool
		wantWarn  bool
		warnMatch string
	}{
		{"valid", `{"completed":true,"confidence":"medium","completedAt":"2026-01-03T08:00:00.5+05:30"}`, "2026-01-03", true, false, ""},
		{"completed false is normalized away", `{"completed":false,"confidence":"low","completedAt":"2026-01-03T08:00:00Z"}`, "2026-01-03", false, false, ""},
		{"bad date key", `{"completed":true,"confidence":"low","completedAt":"2026-01-03T08:00:00Z"}`, "2026-1-3", false, true, "invalid date"},
		{"non date key", `{"completed":true,"confidence":"low","completedAt":"2026-01-03T08:00:00Z"}`, "today", false, true, "invalid date"},
		{"bad confidence", `{"completed":true,"confidence":"meh","completedAt":"2026-01-03T08:00:00Z"}`, "2026-01-03", false, true, "invalid confidence"},
		{"missing confidence", `{"completed":true,"completedAt":"2026-01-03T08:00:00Z"}`, "2026-01-03", false, true, "missing confidence"},
		{"bad timestamp", `{"completed":true,"confidence":"low","completedAt":"yesterday"}`, "2026-01-03", false, true, "invalid completedAt"},
		{"missing timestamp", `{"completed":true,"confidence":"low"}`, "2026-01-03", false, true, "missing completedAt"},
		{"missing flag", `{"confidence":"low","completedAt":"2026-01-03T08:00:00Z"}`, "2026-01-03", false, true, "missing completed"},
		{"wrong shape", `"done"`, "2026-01-03", false, true, "wrong shape"},
		{"wrong field type", `{"completed":"yes","confidence":"low","completedAt":"2026-01-03T08:00:00Z"}`, "2026-01-03", false, true, "wrong shape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, warnings, err := Decode([]byte(`{"` + tt.key + `":` + tt.record + `}`))
			require.NoError(t, err)
			if tt.wantKept {
				assert.Len(t, data, 1)
			} else {
				assert.Empty(t, data)
			}
			if tt.wantWarn {
				require.Len(t, warnings, 1)
				assert.ErrorIs(t, warnings[0], domain.ErrMalformedRecord)
				assert.Contains(t, warnings[0].Error(), tt.warnMatch)
			} else {
				assert.Empty(t, warnings)
			}
		})
	}
}

func TestDecode_EmptyAndInvalidBlobs(t *testing.T) {
	data, warnings, err := Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Empty(t, warnings)

	_, _, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}
