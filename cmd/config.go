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
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective machine settings",
	Long: `Show the machine settings after merging the config file, the ENIGMA_*
environment variables and the command line flags.  The output can be saved
as $HOME/.enigma.yaml.`,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := loadSettings()
		cobra.CheckErr(err)
		cobra.CheckErr(writeSettings(s, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// writeSettings validates s and writes it as YAML.
func writeSettings(s Settings, w io.Writer) error {
	if _, err := s.resolve(); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}

	return enc.Close()
}
