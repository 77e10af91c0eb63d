package cmd

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/bgallie/enigma/cryptors"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"
)

func settings() Settings {
	s := defaultSettings
	s.Rotors = append([]string(nil), defaultSettings.Rotors...)
	return s
}

func TestResolve_CollectsEveryProblem(t *testing.T) {
	s := Settings{Reflector: "Z", Rotors: []string{"I", "VI", "II"}, Stepping: "triple"}

	_, err := s.resolve()
	if err == nil {
		t.Fatal("resolve succeeded, want error")
	}
	if n := len(multierr.Errors(err)); n != 3 {
		t.Errorf("got %d errors, want 3: %v", n, err)
	}
}

func TestResolve_RotorCount(t *testing.T) {
	s := settings()
	s.Rotors = []string{"I", "II"}
	if _, err := s.resolve(); err == nil {
		t.Error("resolve with 2 rotors succeeded, want error")
	}
}

func TestResolve_Offsets(t *testing.T) {
	s := settings()
	s.Offsets = []int{1, 2, 3}
	s.Positions = "ZZZ"

	parts, err := s.resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	got := []int{parts.rotors[0].Offset(), parts.rotors[1].Offset(), parts.rotors[2].Offset()}
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("offsets mismatch (-want +got):\n%s", diff)
	}

	s.Offsets = []int{1, 26, 3}
	if _, err := s.resolve(); err == nil {
		t.Error("resolve with offset 26 succeeded, want error")
	}
}

func TestResolve_BadPositions(t *testing.T) {
	for _, p := range []string{"AB", "A1C"} {
		s := settings()
		s.Positions = p
		if _, err := s.resolve(); err == nil {
			t.Errorf("resolve with positions %q succeeded, want error", p)
		}
	}
}

func TestBuildMachine_Positions(t *testing.T) {
	s := settings()
	s.Positions = "ADU"

	m, err := buildMachine(s)
	if err != nil {
		t.Fatalf("buildMachine: %v", err)
	}
	if got := m.Bank().Offsets(); got != [3]int{20, 2, 22} {
		t.Errorf("Offsets() = %v, want [20 2 22]", got)
	}
	got, err := m.Encrypt("HELLOWORLD")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if got != "IAICCXQEAT" {
		t.Errorf("Encrypt = %q, want IAICCXQEAT", got)
	}
}

func TestBuildMachine_DuplicateRotors(t *testing.T) {
	s := settings()
	s.Rotors = []string{"I", "II", "I"}
	if _, err := buildMachine(s); !errors.Is(err, cryptors.ErrDuplicateRotorModel) {
		t.Errorf("buildMachine error = %v, want ErrDuplicateRotorModel", err)
	}
}

func TestEncrypt_Plain(t *testing.T) {
	var out bytes.Buffer
	err := encrypt(settings(), armor{group: 5}, strings.NewReader("AAAAA AAAAA\n"), &out)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if out.String() != "BDZGO WCXLT\n" {
		t.Errorf("encrypt = %q, want %q", out.String(), "BDZGO WCXLT\n")
	}
}

func TestEncrypt_InvalidCharacter(t *testing.T) {
	var out bytes.Buffer
	err := encrypt(settings(), armor{}, strings.NewReader("ATTACK AT 0600"), &out)
	if !errors.Is(err, cryptors.ErrInvalidCharacter) {
		t.Errorf("encrypt error = %v, want ErrInvalidCharacter", err)
	}
}

func TestDecrypt_Plain(t *testing.T) {
	var out bytes.Buffer
	if err := decrypt(settings(), armor{}, strings.NewReader("BDZGO WCXLT\n"), &out); err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if out.String() != "AAAAAAAAAA\n" {
		t.Errorf("decrypt = %q, want %q", out.String(), "AAAAAAAAAA\n")
	}
}

func roundTrip(t *testing.T, enc, dec armor, encSettings, decSettings Settings) string {
	t.Helper()
	const plaintext = "ATTACK AT DAWN\nHOLD THE BRIDGE\n"

	var cipher bytes.Buffer
	if err := encrypt(encSettings, enc, strings.NewReader(plaintext), &cipher); err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	var plain bytes.Buffer
	if err := decrypt(decSettings, dec, &cipher, &plain); err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	return strings.TrimSpace(plain.String())
}

func TestRoundTrip(t *testing.T) {
	const want = "ATTACKATDAWNHOLDTHEBRIDGE"
	machineSettings := settings()
	machineSettings.Reflector = "C"
	machineSettings.Rotors = []string{"V", "III", "IV"}
	machineSettings.Positions = "QEV"
	machineSettings.Stepping = "double"

	tests := []struct {
		name     string
		enc, dec armor
		decWith  Settings
	}{
		{"plain", armor{group: 5}, armor{}, machineSettings},
		{"ascii85 compressed", armor{useASCII85: true, compression: true}, armor{useASCII85: true, compression: true}, machineSettings},
		{"pem carries settings", armor{usePem: true}, armor{}, settings()},
		{"pem compressed", armor{usePem: true, compression: true}, armor{}, settings()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roundTrip(t, tt.enc, tt.dec, machineSettings, tt.decWith); got != want {
				t.Errorf("round trip = %q, want %q", got, want)
			}
		})
	}
}

func TestSettingsFromHeaders(t *testing.T) {
	s := settings()
	s.Positions = "ABC"

	got, err := settingsFromHeaders(s, map[string]string{
		"Reflector": "A",
		"Rotors":    "II,IV,V",
		"Offsets":   "1,2,3",
		"Stepping":  "double",
	})
	if err != nil {
		t.Fatalf("settingsFromHeaders: %v", err)
	}

	want := s
	want.Reflector = "A"
	want.Rotors = []string{"II", "IV", "V"}
	want.Offsets = []int{1, 2, 3}
	want.Positions = ""
	want.Stepping = "double"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	if _, err := settingsFromHeaders(s, map[string]string{"Offsets": "1,x,3"}); err == nil {
		t.Error("bad Offsets header accepted")
	}
}

func TestFormatOffsets(t *testing.T) {
	if got := formatOffsets([3]int{20, 2, 22}); got != "20,2,22" {
		t.Errorf("formatOffsets = %q", got)
	}
	got, err := parseOffsets("20, 2,22")
	if err != nil {
		t.Fatalf("parseOffsets: %v", err)
	}
	if diff := cmp.Diff([]int{20, 2, 22}, got); diff != "" {
		t.Errorf("parseOffsets mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupWriter(t *testing.T) {
	tests := []struct {
		name string
		size int
		in   string
		want string
	}{
		{"no grouping", 0, "ABCDEFG", "ABCDEFG\n"},
		{"groups of 3", 3, "ABCDEFG", "ABC DEF G\n"},
		{"exact groups", 2, "ABCD", "AB CD\n"},
		{"empty", 5, "", ""},
		{"ten groups a line", 1, "ABCDEFGHIJKL", "A B C D E F G H I J\nK L\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			gw := newGroupWriter(&buf, tt.size)
			if _, err := io.WriteString(gw, tt.in); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if err := gw.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestStripSpaceHelper(t *testing.T) {
	got, err := io.ReadAll(stripSpaceHelper(strings.NewReader(" A B\tC\r\nD ")))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "ABCD" {
		t.Errorf("got %q, want ABCD", got)
	}
}

func TestWriteSettings(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSettings(settings(), &buf); err != nil {
		t.Fatalf("writeSettings: %v", err)
	}
	for _, want := range []string{"reflector: B", "stepping: odometer", "- I", "- III"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}

	bad := settings()
	bad.Reflector = "Q"
	if err := writeSettings(bad, &buf); err == nil {
		t.Error("writeSettings accepted an unknown reflector")
	}
}
