// machine
package machine

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/bank"
)

// Machine enciphers messages with a single rotor bank.  Letters must pass
// through the bank strictly in order, so a Machine must not be shared between
// goroutines.
type Machine struct {
	bank *bank.Bank
}

func New(b *bank.Bank) *Machine {
	return &Machine{bank: b}
}

func (m *Machine) Bank() *bank.Bank {
	return m.bank
}

// EncryptChar enciphers a single letter.
func (m *Machine) EncryptChar(r rune) (rune, error) {
	s, err := cryptors.NewSymbol(r)
	if err != nil {
		return 0, &cryptors.InvalidCharacterError{Char: r, Pos: 0, Err: err}
	}

	out, err := m.bank.EncryptChar(s)
	if err != nil {
		return 0, err
	}

	return out.Rune(), nil
}

// Encrypt enciphers text.  Every character must be a letter; the first one
// that is not is reported and the rotors are left where they were.
func (m *Machine) Encrypt(text string) (string, error) {
	symbols := make([]cryptors.Symbol, 0, len(text))
	pos := 0

	for _, r := range text {
		s, err := cryptors.NewSymbol(r)
		if err != nil {
			return "", &cryptors.InvalidCharacterError{Char: r, Pos: pos, Err: err}
		}

		symbols = append(symbols, s)
		pos++
	}

	var output strings.Builder
	output.Grow(len(symbols))

	for _, s := range symbols {
		out, err := m.bank.EncryptChar(s)
		if err != nil {
			return "", err
		}

		output.WriteRune(out.Rune())
	}

	return output.String(), nil
}

// Reader returns a reader that yields the encipherment of rdr.  Unlike
// Encrypt, letters before an invalid character have already been enciphered
// when the error is returned.
func (m *Machine) Reader(rdr io.Reader) io.Reader {
	encRdr, encWrtr := io.Pipe()

	go func() {
		bRdr := bufio.NewReader(rdr)
		bWrtr := bufio.NewWriter(encWrtr)
		pos := 0

		for {
			r, _, err := bRdr.ReadRune()
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = bWrtr.Flush()
				}
				encWrtr.CloseWithError(err)
				return
			}

			s, err := cryptors.NewSymbol(r)
			if err != nil {
				bWrtr.Flush()
				encWrtr.CloseWithError(&cryptors.InvalidCharacterError{Char: r, Pos: pos, Err: err})
				return
			}

			out, err := m.bank.EncryptChar(s)
			if err != nil {
				bWrtr.Flush()
				encWrtr.CloseWithError(err)
				return
			}

			if _, err := bWrtr.WriteRune(out.Rune()); err != nil {
				encWrtr.CloseWithError(err)
				return
			}

			pos++
		}
	}()

	return encRdr
}
