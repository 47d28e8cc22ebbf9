package envelope

import (
	"encoding/json"
	"testing"
)

type record struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestRecords_SupportedShapes(t *testing.T) {
	list := `[{"id":1,"name":"Tower Fund"},{"id":2,"name":"Marina Plaza"}]`

	cases := []struct {
		name string
		body string
	}{
		{"bare_array", list},
		{"data", `{"data":` + list + `}`},
		{"payload", `{"payload":` + list + `}`},
		{"payload_data", `{"payload":{"data":` + list + `}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records := Records(json.RawMessage(tc.body))
			if len(records) != 2 {
				t.Fatalf("expected 2 records, got %d", len(records))
			}

			var first record
			if err := json.Unmarshal(records[0], &first); err != nil {
				t.Fatalf("failed to decode first record: %v", err)
			}
			if first.ID != 1 || first.Name != "Tower Fund" {
				t.Errorf("first record mismatch: %+v", first)
			}

			var second record
			if err := json.Unmarshal(records[1], &second); err != nil {
				t.Fatalf("failed to decode second record: %v", err)
			}
			if second.ID != 2 {
				t.Errorf("expected order preserved, got second record %+v", second)
			}
		})
	}
}

func TestRecords_MalformedEnvelopes(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty_body", ""},
		{"null", `null`},
		{"empty_object", `{}`},
		{"payload_data_not_array", `{"payload":{"data":"not-an-array"}}`},
		{"payload_not_array", `{"payload":"oops"}`},
		{"number", `42`},
		{"invalid_json", `{"data":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records := Records(json.RawMessage(tc.body))
			if records == nil {
				t.Fatal("expected empty slice, got nil")
			}
			if len(records) != 0 {
				t.Errorf("expected no records, got %d", len(records))
			}
		})
	}
}

func TestRecords_EmptyArray(t *testing.T) {
	records := Records(json.RawMessage(`{"data":[]}`))
	if len(records) != 0 {
		t.Errorf("expected 0 records, got %d", len(records))
	}
}

func TestRecords_BareArrayWinsOverWrappers(t *testing.T) {
	// A bare array is taken as-is even if its elements contain envelope-like keys.
	records := Records(json.RawMessage(`[{"data":[1,2,3]}]`))
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
}

func TestDecodeList(t *testing.T) {
	body := `{"payload":{"data":[{"id":1,"name":"Tower Fund"},{"id":"bad"},{"id":3,"name":"Souk Mall"}]}}`

	items := DecodeList[record](json.RawMessage(body))
	if len(items) != 2 {
		t.Fatalf("expected 2 decodable records, got %d", len(items))
	}
	if items[0].ID != 1 || items[1].ID != 3 {
		t.Errorf("unexpected records: %+v", items)
	}
}

func TestRecord_Unwrap(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"payload", `{"payload":{"id":7}}`, `{"id":7}`},
		{"data", `{"data":{"id":7}}`, `{"id":7}`},
		{"bare", `{"id":7}`, `{"id":7}`},
		{"payload_wins_over_data", `{"payload":{"id":1},"data":{"id":2}}`, `{"id":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Record(json.RawMessage(tc.body))

			var rec record
			if err := json.Unmarshal(got, &rec); err != nil {
				t.Fatalf("failed to decode unwrapped record: %v", err)
			}

			var want record
			if err := json.Unmarshal([]byte(tc.want), &want); err != nil {
				t.Fatalf("bad test fixture: %v", err)
			}
			if rec.ID != want.ID {
				t.Errorf("expected id %d, got %d", want.ID, rec.ID)
			}
		})
	}
}
