// cyptor
package cryptors

import (
	"errors"
	"fmt"
	"unicode"
)

const (
	// AlphabetSize is the number of contacts on every rotor and reflector.
	AlphabetSize = 26
	firstLetter  = 'A'
	lastLetter   = 'Z'
)

var (
	ErrNotAlphabetic       = errors.New("character is not alphabetic")
	ErrOutOfRange          = errors.New("character is not between A and Z")
	ErrLookupFailure       = errors.New("index is outside the alphabet")
	ErrDuplicateRotorModel = errors.New("rotor models must be distinct")
	ErrInvalidCharacter    = errors.New("invalid character")
)

// InvalidCharacterError reports the first character of a message that could
// not be enciphered and its (rune) position in the message.
type InvalidCharacterError struct {
	Char rune
	Pos  int
	Err  error
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid character %q at position %d: %v", e.Char, e.Pos, e.Err)
}

func (e *InvalidCharacterError) Unwrap() error {
	return e.Err
}

func (e *InvalidCharacterError) Is(target error) bool {
	return target == ErrInvalidCharacter
}

// Symbol is a validated letter of the 26 letter alphabet.  The original
// character is kept for display, the index is always taken from its upper
// case form.
type Symbol struct {
	char  rune
	index int
}

// NewSymbol validates r and returns it as a Symbol.
func NewSymbol(r rune) (Symbol, error) {
	if !unicode.IsLetter(r) {
		return Symbol{}, fmt.Errorf("%q: %w", r, ErrNotAlphabetic)
	}

	// Only ASCII letters are folded.  unicode.ToUpper would map letters such
	// as the dotless i onto 'I'.
	upper := r
	if upper >= 'a' && upper <= 'z' {
		upper -= 'a' - 'A'
	}

	if upper < firstLetter || upper > lastLetter {
		return Symbol{}, fmt.Errorf("%q: %w", r, ErrOutOfRange)
	}

	return Symbol{char: r, index: int(upper - firstLetter)}, nil
}

// SymbolAt returns the upper case Symbol for an alphabet index.
func SymbolAt(index int) (Symbol, error) {
	if index < 0 || index >= AlphabetSize {
		return Symbol{}, fmt.Errorf("%d: %w", index, ErrLookupFailure)
	}

	return Symbol{char: rune(firstLetter + index), index: index}, nil
}

// Rune returns the character the Symbol was created from.
func (s Symbol) Rune() rune {
	return s.char
}

// Index returns the zero based position of the letter in the alphabet.
func (s Symbol) Index() int {
	return s.index
}

func (s Symbol) String() string {
	return string(s.char)
}

// Mod reduces n into the range [0, AlphabetSize).
func Mod(n int) int {
	n %= AlphabetSize
	if n < 0 {
		n += AlphabetSize
	}

	return n
}

// Crypter is one stage of the signal path.  Forward is applied on the way
// towards the reflector and Backward on the way back from it.
type Crypter interface {
	Forward(int) (int, error)
	Backward(int) (int, error)
}
