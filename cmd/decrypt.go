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
	"log/slog"
	"strings"

	"github.com/bgallie/enigma/internal/logging"
	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"
)

var decArmor armor

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt ciphertext with the rotor machine",
	Long: `Decrypt ciphertext with the rotor machine.
PEM encoded input is detected automatically and the machine settings recorded
in its headers replace the configured ones.`,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := loadSettings()
		cobra.CheckErr(err)
		fin, fout := getInputAndOutputFiles()
		defer fout.Close()
		cobra.CheckErr(decrypt(s, decArmor, fin, fout))
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	decryptCmd.Flags().BoolVarP(&decArmor.useASCII85, "useASCII85", "a", false, "the input is ASCII85 encoded")
	decryptCmd.Flags().BoolVarP(&decArmor.compression, "compress", "c", false, "the ciphertext was compressed using flate")
	decryptCmd.Flags().IntVarP(&decArmor.group, "group", "g", 0, "split the plaintext into groups of this many letters (0 for none)")
}

func decrypt(s Settings, a armor, fin io.Reader, fout io.Writer) error {
	log := logging.New("decrypt")
	bRdr := bufio.NewReader(fin)
	var decIn io.Reader = bRdr

	b, err := bRdr.Peek(5)
	if err != nil && err != io.EOF {
		return err
	}

	if string(b) == "-----" {
		pRdr, blck := pem.FromPem(bRdr)
		if s, err = settingsFromHeaders(s, blck.Headers); err != nil {
			return err
		}
		a.compression = blck.Headers["Compression"] == "true"
		log.Debug("using PEM headers", slog.Any("headers", blck.Headers))
		decIn = pRdr
	} else if a.useASCII85 {
		decIn = ascii85.FromASCII85(lines.CombineLines(bRdr))
	}

	if a.compression {
		decIn = flate.FromFlate(decIn)
	}

	m, err := buildMachine(s)
	if err != nil {
		return err
	}

	gw := newGroupWriter(fout, a.group)
	if _, err = io.Copy(gw, m.Reader(stripSpaceHelper(decIn))); err != nil {
		return err
	}

	return gw.Close()
}

// settingsFromHeaders replaces the machine settings in s with those recorded
// in the headers of a PEM block.
func settingsFromHeaders(s Settings, headers map[string]string) (Settings, error) {
	if v, ok := headers["Reflector"]; ok {
		s.Reflector = v
	}

	if v, ok := headers["Rotors"]; ok {
		s.Rotors = strings.Split(v, ",")
	}

	if v, ok := headers["Offsets"]; ok {
		offsets, err := parseOffsets(v)
		if err != nil {
			return s, fmt.Errorf("PEM header Offsets: %w", err)
		}
		s.Offsets = offsets
		s.Positions = ""
	}

	if v, ok := headers["Stepping"]; ok {
		s.Stepping = v
	}

	return s, nil
}
