package nlp

import (
	"encoding/json"
	"testing"
)

// Every declared field must be present as a key, explicitly null when unset,
// so stored metadata always carries the full field set.
func TestTransactionRecord_MarshalsExplicitNulls(t *testing.T) {
	raw, err := json.Marshal(EmptyTransactionRecord())
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"amount", "date", "category", "location", "type"} {
		v, ok := m[key]
		if !ok {
			t.Errorf("key %q missing from marshalled record", key)
		}
		if v != nil {
			t.Errorf("key %q = %v, want explicit null", key, v)
		}
	}
}

func TestGoalRecord_MarshalsExplicitNulls(t *testing.T) {
	raw, err := json.Marshal(EmptyGoalRecord())
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"target_amount", "start_date", "end_date", "frequency", "name"} {
		if v, ok := m[key]; !ok || v != nil {
			t.Errorf("key %q = %v (present=%v), want explicit null", key, v, ok)
		}
	}
}
