package reflector_test

import (
	"errors"
	"testing"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/reflector"
)

var models = []reflector.Model{reflector.A, reflector.B, reflector.C}

func TestReflect_IsPermutation(t *testing.T) {
	for _, m := range models {
		t.Run(m.String(), func(t *testing.T) {
			r, err := reflector.New(m)
			if err != nil {
				t.Fatalf("New(%v): %v", m, err)
			}

			seen := make(map[int]int)
			for i := 0; i < cryptors.AlphabetSize; i++ {
				out, err := r.Reflect(i)
				if err != nil {
					t.Fatalf("Reflect(%d): %v", i, err)
				}
				if out < 0 || out >= cryptors.AlphabetSize {
					t.Fatalf("Reflect(%d) = %d, outside the alphabet", i, out)
				}
				if prev, ok := seen[out]; ok {
					t.Errorf("Reflect(%d) and Reflect(%d) both give %d", prev, i, out)
				}
				seen[out] = i
				if out == i {
					t.Errorf("Reflect(%d) maps a letter to itself", i)
				}
				back, _ := r.Reflect(out)
				if back != i {
					t.Errorf("Reflect(Reflect(%d)) = %d, want %d", i, back, i)
				}
			}
		})
	}
}

func TestReflect_BMapsBToR(t *testing.T) {
	r, err := reflector.New(reflector.B)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := r.Reflect(1)
	if err != nil {
		t.Fatalf("Reflect(1): %v", err)
	}
	if got != 'R'-'A' {
		t.Errorf("Reflect('B') = %c, want R", rune('A'+got))
	}
}

func TestReflect_OutOfRange(t *testing.T) {
	r, _ := reflector.New(reflector.A)

	for _, idx := range []int{-1, 26} {
		if _, err := r.Reflect(idx); !errors.Is(err, cryptors.ErrLookupFailure) {
			t.Errorf("Reflect(%d) error = %v, want ErrLookupFailure", idx, err)
		}
	}
}

func TestWiring(t *testing.T) {
	if got := reflector.A.Wiring(); got != "EJMZALYXVBWFCRQUONTSPIKHGD" {
		t.Errorf("A.Wiring() = %q", got)
	}
	if got := reflector.Model(9).Wiring(); got != "" {
		t.Errorf("unknown model Wiring() = %q, want empty", got)
	}
}

func TestParseModel(t *testing.T) {
	tests := []struct {
		in      string
		want    reflector.Model
		wantErr bool
	}{
		{"A", reflector.A, false},
		{"b", reflector.B, false},
		{" C ", reflector.C, false},
		{"D", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := reflector.ParseModel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseModel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseModel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_UnknownModel(t *testing.T) {
	if _, err := reflector.New(reflector.Model(0)); !errors.Is(err, cryptors.ErrLookupFailure) {
		t.Errorf("New(0) error = %v, want ErrLookupFailure", err)
	}
}
