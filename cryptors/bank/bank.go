// bank
package bank

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/reflector"
	"github.com/bgallie/enigma/cryptors/rotor"
)

// Stepping selects how the rotors advance before each letter.
type Stepping int

const (
	// Odometer carries into a neighbour only when a rotor steps off its
	// turnover offset.
	Odometer Stepping = iota
	// DoubleStep adds the historical anomaly: a middle rotor sitting at its
	// turnover offset steps again together with the left rotor.
	DoubleStep
)

var steppingNames = map[Stepping]string{Odometer: "odometer", DoubleStep: "double"}

// ParseStepping returns the Stepping named by s.
func ParseStepping(s string) (Stepping, error) {
	for k, v := range steppingNames {
		if strings.EqualFold(v, strings.TrimSpace(s)) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unknown stepping %q", s)
}

func (s Stepping) String() string {
	if n, ok := steppingNames[s]; ok {
		return n
	}

	return fmt.Sprintf("Stepping(%d)", int(s))
}

type Option func(*Bank)

func WithStepping(s Stepping) Option {
	return func(b *Bank) {
		b.stepping = s
	}
}

// WithLogger sets the logger that receives a debug record for every stage of
// the signal path.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bank) {
		if l != nil {
			b.log = l
		}
	}
}

// Bank is three distinct rotors and a reflector.  It owns its rotors; they
// are copied in by New and never handed out.
type Bank struct {
	left, middle, right rotor.Rotor
	reflector           *reflector.Reflector
	stepping            Stepping
	log                 *slog.Logger
}

// New assembles a rotor bank.  The rotors are given left to right.
func New(refl reflector.Model, left, middle, right rotor.Rotor, opts ...Option) (*Bank, error) {
	models := []rotor.Model{left.Model(), middle.Model(), right.Model()}
	for _, m := range models {
		if m.Turnover() < 0 {
			return nil, fmt.Errorf("rotor %v: %w", m, cryptors.ErrLookupFailure)
		}
	}

	if m, ok := duplicateModel(models); ok {
		return nil, fmt.Errorf("rotor %v used more than once: %w", m, cryptors.ErrDuplicateRotorModel)
	}

	r, err := reflector.New(refl)
	if err != nil {
		return nil, err
	}

	b := &Bank{
		left:      left,
		middle:    middle,
		right:     right,
		reflector: r,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

func duplicateModel(models []rotor.Model) (rotor.Model, bool) {
	for i := range models {
		for j := i + 1; j < len(models); j++ {
			if models[i] == models[j] {
				return models[i], true
			}
		}
	}

	return 0, false
}

// Advance steps the rotors as the machine does before enciphering a letter.
func (b *Bank) Advance() {
	switch b.stepping {
	case DoubleStep:
		if b.middle.AtTurnover() {
			b.middle.Step()
			b.left.Step()
		} else if b.right.AtTurnover() {
			b.middle.Step()
		}

		b.right.Step()
	default:
		carryMiddle := b.right.AtTurnover()
		b.right.Step()

		if carryMiddle {
			carryLeft := b.middle.AtTurnover()
			b.middle.Step()

			if carryLeft {
				b.left.Step()
			}
		}
	}
}

// EncryptChar advances the rotors and passes s through the rotors, the
// reflector and back.
func (b *Bank) EncryptChar(s cryptors.Symbol) (cryptors.Symbol, error) {
	b.Advance()

	stages := []struct {
		name string
		f    func(int) (int, error)
	}{
		{"right", b.right.Forward},
		{"middle", b.middle.Forward},
		{"left", b.left.Forward},
		{"reflector", b.reflector.Reflect},
		{"left", b.left.Backward},
		{"middle", b.middle.Backward},
		{"right", b.right.Backward},
	}

	idx := s.Index()
	for i, stage := range stages {
		out, err := stage.f(idx)
		if err != nil {
			return cryptors.Symbol{}, err
		}

		b.log.Debug("stage",
			slog.String("rotor", stage.name),
			slog.Bool("returning", i > 3),
			slog.String("in", string(rune('A'+idx))),
			slog.String("out", string(rune('A'+out))))
		idx = out
	}

	return cryptors.SymbolAt(idx)
}

// Offsets returns the left, middle and right rotor offsets.
func (b *Bank) Offsets() [3]int {
	return [3]int{b.left.Offset(), b.middle.Offset(), b.right.Offset()}
}

// Windows returns the letters showing for the left, middle and right rotors.
func (b *Bank) Windows() string {
	return b.left.Window() + b.middle.Window() + b.right.Window()
}

// Models returns the left, middle and right rotor models.
func (b *Bank) Models() [3]rotor.Model {
	return [3]rotor.Model{b.left.Model(), b.middle.Model(), b.right.Model()}
}

func (b *Bank) Reflector() reflector.Model {
	return b.reflector.Model()
}

func (b *Bank) Stepping() Stepping {
	return b.stepping
}

func (b *Bank) String() string {
	return fmt.Sprintf("bank.New(%v, %v, %v, %v) stepping=%v", b.reflector.Model(), &b.left, &b.middle, &b.right, b.stepping)
}
