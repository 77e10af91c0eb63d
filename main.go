// This is free and unencumbered software released into the public domain.
// See the UNLICENSE file for details.

// Package main - enigma simulates a three rotor cipher machine with a
// reflector.  A letter entering the machine passes through the right, middle
// and left rotors, is turned around by the reflector and passes back through
// the rotors, which step like an odometer before every letter.
package main

import "github.com/bgallie/enigma/cmd"

var (
	GitCommit  string = "not set"
	GitBranch  string = "not set"
	GitState   string = "not set"
	GitSummary string = "not set"
	BuildDate  string = "not set"
	Version    string = "dev"
)

func main() {
	cmd.GitCommit = GitCommit
	cmd.GitBranch = GitBranch
	cmd.GitState = GitState
	cmd.GitSummary = GitSummary
	cmd.BuildDate = BuildDate
	cmd.Version = Version
	cmd.Execute()
}
