package types

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestEntityID_Fields(t *testing.T) {
	tests := []struct {
		name  string
		kind  uint8
		gen   uint32
		index uint32
	}{
		{"All zero", 0, 0, 0},
		{"World slot", 0, 1, 0},
		{"Simple values", 2, 3, 4},
		{"Max values", maskKind, maskGen, maskIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := PackEntityID(tt.kind, tt.gen, tt.index)

			if id.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", id.Kind(), tt.kind)
			}
			if id.Generation() != tt.gen {
				t.Errorf("Generation() = %v, want %v", id.Generation(), tt.gen)
			}
			if id.Index() != tt.index {
				t.Errorf("Index() = %v, want %v", id.Index(), tt.index)
			}
		})
	}
}

func TestEntityID_GenerationMasked(t *testing.T) {
	id := PackEntityID(1, maskGen+5, 7)
	if got := id.Generation(); got != 4 {
		t.Errorf("Generation() = %v, want 4", got)
	}
	if got := id.Index(); got != 7 {
		t.Errorf("Index() = %v, want 7", got)
	}
}

func TestNextGeneration(t *testing.T) {
	tests := []struct {
		name string
		gen  uint32
		want uint32
	}{
		{"Fresh slot", 0, 1},
		{"Simple", 41, 42},
		{"Wraps past max", MaxGeneration, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextGeneration(tt.gen); got != tt.want {
				t.Errorf("NextGeneration(%d) = %d, want %d", tt.gen, got, tt.want)
			}
		})
	}
}

func TestEntityID_IsNil(t *testing.T) {
	tests := []struct {
		name string
		id   EntityID
		want bool
	}{
		{"Zero is Nil", 0, true},
		{"NilEntityID constant", NilEntityID, true},
		{"World handle is not Nil", PackEntityID(0, 1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.IsNil(); got != tt.want {
				t.Errorf("IsNil() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntityID_MarshalJSON(t *testing.T) {
	got, err := PackEntityID(0, 1, 0).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if want := []byte(`"4294967296"`); !bytes.Equal(got, want) {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
}

func TestEntityID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    EntityID
		wantErr bool
	}{
		{name: "String ID", data: []byte(`"123"`), want: EntityID(123)},
		{name: "Number ID", data: []byte(`456`), want: EntityID(456)},
		{name: "Empty string", data: []byte(`""`), want: NilEntityID},
		{name: "Null", data: []byte(`null`), want: NilEntityID},
		{name: "Invalid format", data: []byte(`"abc"`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id EntityID
			err := id.UnmarshalJSON(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && id != tt.want {
				t.Errorf("UnmarshalJSON() = %v, want %v", id, tt.want)
			}
		})
	}
}

// FuzzEntityID_JSONRoundTrip: любой дескриптор переживает JSON без потерь.
func FuzzEntityID_JSONRoundTrip(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(123456789))
	f.Add(^uint64(0))

	f.Fuzz(func(t *testing.T, raw uint64) {
		original := EntityID(raw)

		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}

		var decoded EntityID
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if decoded != original {
			t.Fatalf("JSON round-trip mismatch: got %d, want %d", decoded, original)
		}
	})
}
