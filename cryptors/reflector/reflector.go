// reflector
package reflector

import (
	"fmt"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/permutator"
)

// Model identifies one of the historical reflectors.
type Model int

const (
	A Model = iota + 1
	B
	C
)

// The wiring lists, in alphabet order, the letter each contact is wired to.
var wirings = map[Model]*permutator.Permutator{
	A: permutator.Must("EJMZALYXVBWFCRQUONTSPIKHGD"),
	B: permutator.Must("YRUHQSLDPXNGOKMIEBFZCWVJAT"),
	C: permutator.Must("FVPJIAOYEDRZXWGCTKUQSBNMHL"),
}

var names = map[Model]string{A: "A", B: "B", C: "C"}

// ParseModel returns the Model named by s ("A", "b", ...).
func ParseModel(s string) (Model, error) {
	for m, n := range names {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return m, nil
		}
	}

	return 0, fmt.Errorf("unknown reflector %q", s)
}

func (m Model) String() string {
	if n, ok := names[m]; ok {
		return n
	}

	return fmt.Sprintf("Model(%d)", int(m))
}

// Wiring returns the literal wiring table of the model, or "" for an unknown
// model.
func (m Model) Wiring() string {
	if p, ok := wirings[m]; ok {
		return p.Wiring()
	}

	return ""
}

var _ cryptors.Crypter = (*Reflector)(nil)

// Reflector is a read-only wheel that turns the forward signal around.
type Reflector struct {
	model Model
	perm  *permutator.Permutator
}

func New(m Model) (*Reflector, error) {
	p, ok := wirings[m]
	if !ok {
		return nil, fmt.Errorf("reflector %v: %w", m, cryptors.ErrLookupFailure)
	}

	return &Reflector{model: m, perm: p}, nil
}

func (r *Reflector) Model() Model {
	return r.model
}

// Reflect returns the index the input index is wired to.
func (r *Reflector) Reflect(idx int) (int, error) {
	out, err := r.perm.Apply_F(idx)
	if err != nil {
		return 0, fmt.Errorf("reflector %v: %w", r.model, err)
	}

	return out, nil
}

// Forward and Backward are both Reflect.
func (r *Reflector) Forward(idx int) (int, error) {
	return r.Reflect(idx)
}

func (r *Reflector) Backward(idx int) (int, error) {
	return r.Reflect(idx)
}

func (r *Reflector) String() string {
	return fmt.Sprintf("reflector.New(%v) [%s]", r.model, r.perm.Wiring())
}
