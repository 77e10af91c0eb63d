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
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"
)

const pemBlockType = "ENIGMA Encrypted Message"

// armor describes how the ciphertext is wrapped.
type armor struct {
	useASCII85  bool
	usePem      bool
	compression bool
	group       int
}

var encArmor armor

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt plaintext with the rotor machine",
	Long: `Encrypt plaintext with the rotor machine.
White space in the plaintext is ignored; every other character must be a letter A-Z.`,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := loadSettings()
		cobra.CheckErr(err)
		fin, fout := getInputAndOutputFiles()
		defer fout.Close()
		cobra.CheckErr(encrypt(s, encArmor, fin, fout))
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().BoolVarP(&encArmor.useASCII85, "useASCII85", "a", false, "use ASCII85 encoding")
	encryptCmd.Flags().BoolVarP(&encArmor.usePem, "usePem", "p", false, "use PEM encoding.")
	encryptCmd.Flags().BoolVarP(&encArmor.compression, "compress", "c", false, "compress the ciphertext using flate")
	encryptCmd.Flags().IntVarP(&encArmor.group, "group", "g", 5, "split plain ciphertext into groups of this many letters (0 for none)")
}

func encrypt(s Settings, a armor, fin io.Reader, fout io.Writer) error {
	m, err := buildMachine(s)
	if err != nil {
		return err
	}

	var blck pem.Block
	if a.usePem {
		blck.Headers = make(map[string]string)
		blck.Type = pemBlockType
		blck.Headers["Reflector"] = m.Bank().Reflector().String()
		models := m.Bank().Models()
		blck.Headers["Rotors"] = fmt.Sprintf("%v,%v,%v", models[0], models[1], models[2])
		blck.Headers["Offsets"] = formatOffsets(m.Bank().Offsets())
		blck.Headers["Stepping"] = m.Bank().Stepping().String()
		blck.Headers["Compression"] = strconv.FormatBool(a.compression)
	}

	var encIn io.Reader = m.Reader(stripSpaceHelper(fin))
	if a.compression {
		encIn = flate.ToFlate(encIn)
	}

	switch {
	case a.usePem:
		_, err = io.Copy(fout, pem.ToPem(bufio.NewReader(encIn), blck))
	case a.useASCII85:
		_, err = io.Copy(fout, lines.SplitToLines(ascii85.ToASCII85(encIn)))
	case a.compression:
		_, err = io.Copy(fout, encIn)
	default:
		gw := newGroupWriter(fout, a.group)
		if _, err = io.Copy(gw, encIn); err == nil {
			err = gw.Close()
		}
	}

	return err
}

// groupWriter separates the letters written to it into space separated
// groups, ten groups to a line, and ends the output with a newline.
type groupWriter struct {
	w     *bufio.Writer
	size  int
	count int
}

func newGroupWriter(w io.Writer, size int) *groupWriter {
	return &groupWriter{w: bufio.NewWriter(w), size: size}
}

func (g *groupWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		if g.size > 0 && g.count > 0 && g.count%g.size == 0 {
			sep := byte(' ')
			if g.count%(g.size*10) == 0 {
				sep = '\n'
			}
			if err := g.w.WriteByte(sep); err != nil {
				return 0, err
			}
		}

		if err := g.w.WriteByte(b); err != nil {
			return 0, err
		}
		g.count++
	}

	return len(p), nil
}

func (g *groupWriter) Close() error {
	if g.count > 0 {
		if err := g.w.WriteByte('\n'); err != nil {
			return err
		}
	}

	return g.w.Flush()
}

