// rotor
package rotor

import (
	"fmt"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/permutator"
)

// Model identifies one of the historical rotors.
type Model int

const (
	I Model = iota + 1
	II
	III
	IV
	V
)

type spec struct {
	name     string
	wiring   *permutator.Permutator
	turnover int
}

// specs holds the wiring between the right and left side of each rotor and
// the offset at which the rotor carries into its left neighbour.
var specs = map[Model]spec{
	I:   {"I", permutator.Must("EKMFLGDQVZNTOWYHXUSPAIBRCJ"), 23},
	II:  {"II", permutator.Must("AJDKSIRUXBLHWTMCQGZNPYFVOE"), 21},
	III: {"III", permutator.Must("BDFHJLCPRTXVZNYEIWGAKMUSQO"), 17},
	IV:  {"IV", permutator.Must("ESOVPZJAYQUIRHXLNFTGKDCMWB"), 20},
	V:   {"V", permutator.Must("VZBRGITYUPSDNHLXAWMJQOFECK"), 16},
}

// Models returns every known rotor model in order.
func Models() []Model {
	return []Model{I, II, III, IV, V}
}

// ParseModel returns the Model named by s ("I", "iv", ...).
func ParseModel(s string) (Model, error) {
	for _, m := range Models() {
		if strings.EqualFold(specs[m].name, strings.TrimSpace(s)) {
			return m, nil
		}
	}

	return 0, fmt.Errorf("unknown rotor %q", s)
}

func (m Model) String() string {
	if s, ok := specs[m]; ok {
		return s.name
	}

	return fmt.Sprintf("Model(%d)", int(m))
}

// Wiring returns the literal wiring table of the model.
func (m Model) Wiring() string {
	if s, ok := specs[m]; ok {
		return s.wiring.Wiring()
	}

	return ""
}

// Turnover returns the offset the rotor carries from, or -1 for an unknown
// model.
func (m Model) Turnover() int {
	if s, ok := specs[m]; ok {
		return s.turnover
	}

	return -1
}

var _ cryptors.Crypter = (*Rotor)(nil)

// Rotor is a wired wheel at a rotational offset.  Only Step changes the
// offset.
type Rotor struct {
	model  Model
	offset int
	wiring *permutator.Permutator
}

// New creates a rotor of the given model.  Without an initial symbol the
// offset is 0, otherwise it is the position of that letter in the rotor's
// wiring.
func New(m Model, initial ...cryptors.Symbol) (Rotor, error) {
	r, err := NewAt(m, 0)
	if err != nil {
		return Rotor{}, err
	}

	if len(initial) > 0 {
		pos, err := r.wiring.Apply_G(initial[0].Index())
		if err != nil {
			return Rotor{}, fmt.Errorf("rotor %v: starting letter %v: %w", m, initial[0], err)
		}

		r.offset = pos
	}

	return r, nil
}

// NewAt creates a rotor of the given model at an explicit offset.
func NewAt(m Model, offset int) (Rotor, error) {
	s, ok := specs[m]
	if !ok {
		return Rotor{}, fmt.Errorf("rotor %v: %w", m, cryptors.ErrLookupFailure)
	}

	return Rotor{model: m, offset: cryptors.Mod(offset), wiring: s.wiring}, nil
}

func (r *Rotor) Model() Model {
	return r.model
}

func (r *Rotor) Offset() int {
	return r.offset
}

// Window returns the letter matching the current offset.
func (r *Rotor) Window() string {
	return string(rune('A' + r.offset))
}

// Forward passes the signal from the right side to the left side.
func (r *Rotor) Forward(idx int) (int, error) {
	wired, err := r.wiring.Apply_F(cryptors.Mod(idx + r.offset))
	if err != nil {
		return 0, fmt.Errorf("rotor %v: %w", r.model, err)
	}

	return cryptors.Mod(wired - r.offset), nil
}

// Backward passes the signal from the left side to the right side.  At a
// fixed offset it is the inverse of Forward.
func (r *Rotor) Backward(idx int) (int, error) {
	wired, err := r.wiring.Apply_G(cryptors.Mod(idx + r.offset))
	if err != nil {
		return 0, fmt.Errorf("rotor %v: %w", r.model, err)
	}

	return cryptors.Mod(wired - r.offset), nil
}

// Step advances the rotor one position.
func (r *Rotor) Step() {
	r.offset = (r.offset + 1) % cryptors.AlphabetSize
}

// AtTurnover reports whether the rotor sits at its turnover offset.
func (r *Rotor) AtTurnover() bool {
	return r.offset == r.model.Turnover()
}

func (r *Rotor) String() string {
	return fmt.Sprintf("rotor.NewAt(%v, %d)", r.model, r.offset)
}
