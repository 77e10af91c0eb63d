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
	"os"
	"strings"
	"unicode"

	"github.com/bgallie/enigma/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	cfgFile        string
	inputFileName  string
	outputFileName string
	GitCommit      string = "not set"
	GitBranch      string = "not set"
	GitState       string = "not set"
	GitSummary     string = "not set"
	BuildDate      string = "not set"
	Version        string = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "enigma",
	Short:   "A three rotor reflector cipher machine",
	Long:    `enigma enciphers and deciphers text with a simulated three rotor, reflector based cipher machine.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(viper.GetString("log-level"))
		if err != nil {
			return err
		}
		logging.Init(level, viper.GetString("log-format"))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("enigma version {{.Version}} %s (%s %s %s) built %s\n",
		GitSummary, GitBranch, GitCommit, GitState, BuildDate))
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.enigma.yaml)")
	pf.StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the file to encrypt/decrypt.")
	pf.StringVarP(&outputFileName, "outputFile", "o", "", "Name of the file receiving the encrypted/decrypted text.")
	pf.String("reflector", defaultSettings.Reflector, "reflector model (A, B or C)")
	pf.StringSlice("rotors", defaultSettings.Rotors, "rotor models, left to right (I, II, III, IV, V)")
	pf.String("positions", "", "starting letters of the left, middle and right rotors")
	pf.IntSlice("offsets", nil, "starting offsets (0-25) of the left, middle and right rotors; overrides positions")
	pf.String("stepping", defaultSettings.Stepping, `rotor stepping: "odometer" or "double"`)
	pf.String("log-level", defaultSettings.LogLevel, "log level (debug, info, warn, error)")
	pf.String("log-format", defaultSettings.LogFormat, `log format: "text" or "json"`)

	for _, name := range []string{"reflector", "rotors", "positions", "offsets", "stepping", "log-level", "log-format"} {
		cobra.CheckErr(viper.BindPFlag(name, pf.Lookup(name)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".enigma" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".enigma")
	}

	viper.SetEnvPrefix("ENIGMA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

/*
	getInputAndOutputFiles will return the input and output files to use while
	encrypting/decrypting text.  If input and/or output files names were given,
	then those files will be opened.  Otherwise stdin and stdout are used.
*/
func getInputAndOutputFiles() (io.Reader, *os.File) {
	var fin io.Reader
	var err error

	if len(inputFileName) > 0 && inputFileName != "-" {
		fin, err = os.Open(inputFileName)
		cobra.CheckErr(err)
	} else {
		fin = promptForText(os.Stdin)
	}

	var fout *os.File

	if len(outputFileName) > 0 && outputFileName != "-" {
		fout, err = os.Create(outputFileName)
		cobra.CheckErr(err)
	} else {
		fout = os.Stdout
	}

	return fin, fout
}

// promptForText reads a single line from an interactive terminal.  Other
// inputs are returned unchanged.
func promptForText(f *os.File) io.Reader {
	if !term.IsTerminal(int(f.Fd())) {
		return f
	}

	fmt.Fprintf(os.Stderr, "Enter the text: ")
	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		cobra.CheckErr(err)
	}

	return strings.NewReader(line)
}

// stripSpaceHelper returns a reader with the white space of rdr removed.
func stripSpaceHelper(rdr io.Reader) io.Reader {
	sRdr, sWrtr := io.Pipe()

	go func() {
		bRdr := bufio.NewReader(rdr)
		bWrtr := bufio.NewWriter(sWrtr)

		for {
			r, _, err := bRdr.ReadRune()
			if err != nil {
				if err == io.EOF {
					err = bWrtr.Flush()
				}
				sWrtr.CloseWithError(err)
				return
			}

			if unicode.IsSpace(r) {
				continue
			}

			if _, err := bWrtr.WriteRune(r); err != nil {
				sWrtr.CloseWithError(err)
				return
			}
		}
	}()

	return sRdr
}
