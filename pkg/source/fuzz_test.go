package source

import "testing"

// FuzzParseJSON tests the device JSON parser with arbitrary input.
func FuzzParseJSON(f *testing.F) {
	// Seed with valid JSON
	f.Add([]byte(`[{"id":"1","name":"AP-001","position":{"x":150,"y":100},"battery":85,"capacity":30,"status":"online","category":"ad-point"}]`))
	f.Add([]byte(`[{"id":"2","x":10,"y":20,"battery":120,"capacity":-5,"status":"warning","type":"smart-bin"}]`))

	// Seed with edge cases
	f.Add([]byte(`[]`))
	f.Add([]byte(`{}`))
	f.Add([]byte(`null`))
	f.Add([]byte(``))
	f.Add([]byte(`[{"id":""}]`))
	f.Add([]byte(`[{"id":"a","status":"online","category":"ad-point"},{"id":"a","status":"online","category":"ad-point"}]`))

	f.Fuzz(func(t *testing.T, data []byte) {
		devices, err := ParseJSON(data)
		if err != nil {
			return
		}
		seen := map[string]bool{}
		for _, d := range devices {
			if seen[d.ID] {
				t.Errorf("duplicate id %q accepted", d.ID)
			}
			seen[d.ID] = true
			if d.Battery < 0 || d.Battery > 100 || d.Capacity < 0 || d.Capacity > 100 {
				t.Errorf("device %s levels not clamped: %d/%d", d.ID, d.Battery, d.Capacity)
			}
			if d.Name == "" {
				t.Errorf("device %s has no name", d.ID)
			}
		}

		// Re-encoding must read back the same fleet
		out, err := ToJSON(devices)
		if err != nil {
			t.Fatalf("ToJSON: %v", err)
		}
		again, err := ParseJSON(out)
		if err != nil {
			t.Fatalf("re-parse: %v", err)
		}
		if len(again) != len(devices) {
			t.Errorf("re-parse gave %d devices, want %d", len(again), len(devices))
		}
	})
}
