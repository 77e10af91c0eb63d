// permutator project permutator.go
package permutator

import (
	"bytes"
	"fmt"

	"github.com/bgallie/enigma/cryptors"
)

// Permutator is a fixed wiring between the 26 contacts on the right side of a
// wheel and the 26 contacts on its left side.
type Permutator struct {
	perm    [cryptors.AlphabetSize]int // right contact -> left contact
	inverse [cryptors.AlphabetSize]int // left contact -> right contact
}

// New creates a permutator from a wiring string.  The letters of the string
// are listed in alphabet order, so a wiring starting with 'E' connects A to E.
func New(wiring string) (*Permutator, error) {
	if len(wiring) != cryptors.AlphabetSize {
		return nil, fmt.Errorf("wiring %q has %d letters, want %d", wiring, len(wiring), cryptors.AlphabetSize)
	}

	var p Permutator
	var seen [cryptors.AlphabetSize]bool

	for i, r := range wiring {
		s, err := cryptors.NewSymbol(r)
		if err != nil {
			return nil, fmt.Errorf("wiring %q: %w", wiring, err)
		}

		if seen[s.Index()] {
			return nil, fmt.Errorf("wiring %q: letter %c is used more than once", wiring, r)
		}

		seen[s.Index()] = true
		p.perm[i] = s.Index()
		p.inverse[s.Index()] = i
	}

	return &p, nil
}

// Must is like New but panics if the wiring is not a permutation.  It is
// intended for the package level wiring tables.
func Must(wiring string) *Permutator {
	p, err := New(wiring)
	if err != nil {
		panic(err)
	}

	return p
}

// Apply_F maps a right side contact to the left side contact it is wired to.
func (p *Permutator) Apply_F(idx int) (int, error) {
	if idx < 0 || idx >= cryptors.AlphabetSize {
		return 0, fmt.Errorf("%d: %w", idx, cryptors.ErrLookupFailure)
	}

	return p.perm[idx], nil
}

// Apply_G is the inverse of Apply_F.
func (p *Permutator) Apply_G(idx int) (int, error) {
	if idx < 0 || idx >= cryptors.AlphabetSize {
		return 0, fmt.Errorf("%d: %w", idx, cryptors.ErrLookupFailure)
	}

	return p.inverse[idx], nil
}

// Wiring returns the permutation in the same form New accepts.
func (p *Permutator) Wiring() string {
	var output bytes.Buffer

	for _, v := range p.perm {
		output.WriteByte(byte('A' + v))
	}

	return output.String()
}

func (p *Permutator) String() string {
	var output bytes.Buffer
	output.WriteString(fmt.Sprintf("permutator.New(%q)\n", p.Wiring()))
	output.WriteString("\tinverse: ")

	for _, v := range p.inverse {
		output.WriteByte(byte('A' + v))
	}

	output.WriteString("\n")
	return output.String()
}
