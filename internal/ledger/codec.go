package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/examplan/internal/domain"
)

// wireRecord is the stored shape of one record. Pointers distinguish a
// missing field from a zero value so malformed records can be detected.
type wireRecord struct {
	Completed   *bool   `json:"completed"`
	Confidence  *string `json:"confidence"`
	CompletedAt *string `json:"completedAt"`
}

// Encode serializes data as a JSON object keyed by YYYY-MM-DD, keys in
// ascending date order.
func Encode(data domain.ProgressData) ([]byte, error) {
	keys := make([]string, 0, len(data))
	byKey := make(map[string]domain.ProgressRecord, len(data))
	for d, rec := range data {
		if !rec.Completed {
			continue
		}
		k := d.String()
		keys = append(keys, k)
		byKey[k] = rec
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		rec := byKey[k]
		completed := true
		conf := string(rec.Confidence)
		at := rec.CompletedAt.UTC().Format(time.RFC3339Nano)
		val, err := json.Marshal(wireRecord{Completed: &completed, Confidence: &conf, CompletedAt: &at})
		if err != nil {
			return nil, fmt.Errorf("encoding record %s: %w", k, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Decode parses a stored blob. A blob that is not a JSON object fails as a
// whole; individual bad records are dropped and reported as
// *domain.MalformedRecordError warnings. Records with completed=false are
// dropped silently.
func Decode(blob []byte) (domain.ProgressData, []error, error) {
	data := make(domain.ProgressData)
	if len(bytes.TrimSpace(blob)) == 0 {
		return data, nil, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		return data, nil, fmt.Errorf("decoding progress blob: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var warnings []error
	for _, k := range keys {
		rec, keep, err := decodeRecord(k, raw[k])
		if err != nil {
			warnings = append(warnings, &domain.MalformedRecordError{Key: k, Err: err})
			continue
		}
		if !keep {
			continue
		}
		d, _ := domain.ParseDateKey(k)
		data[d] = rec
	}
	return data, warnings, nil
}

func decodeRecord(key string, msg json.RawMessage) (domain.ProgressRecord, bool, error) {
	if _, err := domain.ParseDateKey(key); err != nil {
		return domain.ProgressRecord{}, false, err
	}

	var w wireRecord
	if err := json.Unmarshal(msg, &w); err != nil {
		return domain.ProgressRecord{}, false, fmt.Errorf("wrong shape: %w", err)
	}
	if w.Completed == nil {
		return domain.ProgressRecord{}, false, fmt.Errorf("missing completed flag")
	}
	if !*w.Completed {
		return domain.ProgressRecord{}, false, nil
	}
	if w.Confidence == nil {
		return domain.ProgressRecord{}, false, fmt.Errorf("missing confidence")
	}
	conf := domain.Confidence(*w.Confidence)
	if !conf.Valid() {
		return domain.ProgressRecord{}, false, fmt.Errorf("invalid confidence %q", *w.Confidence)
	}
	if w.CompletedAt == nil {
		return domain.ProgressRecord{}, false, fmt.Errorf("missing completedAt")
	}
	at, err := time.Parse(time.RFC3339Nano, *w.CompletedAt)
	if err != nil {
		return domain.ProgressRecord{}, false, fmt.Errorf("invalid completedAt %q", *w.CompletedAt)
	}
	return domain.ProgressRecord{Completed: true, Confidence: conf, CompletedAt: at}, true, nil
}
