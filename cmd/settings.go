/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/bank"
	"github.com/bgallie/enigma/cryptors/machine"
	"github.com/bgallie/enigma/cryptors/reflector"
	"github.com/bgallie/enigma/cryptors/rotor"
	"github.com/bgallie/enigma/internal/logging"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// Settings is the machine configuration gathered from flags, the environment
// and the config file.
type Settings struct {
	Reflector string   `mapstructure:"reflector" yaml:"reflector"`
	Rotors    []string `mapstructure:"rotors" yaml:"rotors"`
	Positions string   `mapstructure:"positions" yaml:"positions,omitempty"`
	Offsets   []int    `mapstructure:"offsets" yaml:"offsets,omitempty,flow"`
	Stepping  string   `mapstructure:"stepping" yaml:"stepping"`
	LogLevel  string   `mapstructure:"log-level" yaml:"log-level"`
	LogFormat string   `mapstructure:"log-format" yaml:"log-format"`
}

var defaultSettings = Settings{
	Reflector: "B",
	Rotors:    []string{"I", "II", "III"},
	Stepping:  bank.Odometer.String(),
	LogLevel:  "warn",
	LogFormat: "text",
}

// loadSettings returns the settings currently held by viper.
func loadSettings() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	return s, nil
}

// machineParts is a validated Settings.
type machineParts struct {
	reflector reflector.Model
	rotors    [3]rotor.Rotor
	stepping  bank.Stepping
}

// resolve validates every field of s and reports all problems at once.
func (s Settings) resolve() (machineParts, error) {
	var parts machineParts
	var errs error
	var err error

	if parts.reflector, err = reflector.ParseModel(s.Reflector); err != nil {
		errs = multierr.Append(errs, err)
	}

	if parts.stepping, err = bank.ParseStepping(s.Stepping); err != nil {
		errs = multierr.Append(errs, err)
	}

	if len(s.Rotors) != 3 {
		errs = multierr.Append(errs, fmt.Errorf("exactly 3 rotors are required, got %d", len(s.Rotors)))
		return parts, errs
	}

	positions := []rune(strings.TrimSpace(s.Positions))
	if len(s.Offsets) == 0 && len(positions) != 0 && len(positions) != 3 {
		errs = multierr.Append(errs, fmt.Errorf("positions %q must name 3 letters", s.Positions))
		positions = nil
	}

	if len(s.Offsets) != 0 && len(s.Offsets) != 3 {
		errs = multierr.Append(errs, fmt.Errorf("exactly 3 offsets are required, got %d", len(s.Offsets)))
		return parts, errs
	}

	for i, name := range s.Rotors {
		m, err := rotor.ParseModel(name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		switch {
		case len(s.Offsets) == 3:
			if s.Offsets[i] < 0 || s.Offsets[i] >= cryptors.AlphabetSize {
				errs = multierr.Append(errs, fmt.Errorf("offset %d of rotor %v is outside 0-25", s.Offsets[i], m))
				continue
			}
			parts.rotors[i], err = rotor.NewAt(m, s.Offsets[i])
		case len(positions) == 3:
			sym, serr := cryptors.NewSymbol(positions[i])
			if serr != nil {
				errs = multierr.Append(errs, fmt.Errorf("position of rotor %v: %w", m, serr))
				continue
			}
			parts.rotors[i], err = rotor.New(m, sym)
		default:
			parts.rotors[i], err = rotor.New(m)
		}

		errs = multierr.Append(errs, err)
	}

	return parts, errs
}

// buildMachine assembles the machine described by s.
func buildMachine(s Settings) (*machine.Machine, error) {
	parts, err := s.resolve()
	if err != nil {
		return nil, err
	}

	log := logging.New("bank")
	b, err := bank.New(parts.reflector, parts.rotors[0], parts.rotors[1], parts.rotors[2],
		bank.WithStepping(parts.stepping), bank.WithLogger(log))
	if err != nil {
		return nil, err
	}

	log.Info("machine assembled",
		slog.String("reflector", b.Reflector().String()),
		slog.Any("rotors", b.Models()),
		slog.Any("offsets", b.Offsets()),
		slog.String("stepping", b.Stepping().String()))
	return machine.New(b), nil
}

// formatOffsets renders offsets as "1,2,3" for a PEM header.
func formatOffsets(offsets [3]int) string {
	f := make([]string, len(offsets))
	for i, o := range offsets {
		f[i] = strconv.Itoa(o)
	}

	return strings.Join(f, ",")
}

func parseOffsets(s string) ([]int, error) {
	flds := strings.Split(s, ",")
	offsets := make([]int, 0, len(flds))

	for _, f := range flds {
		o, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("bad offset %q: %w", f, err)
		}
		offsets = append(offsets, o)
	}

	return offsets, nil
}
