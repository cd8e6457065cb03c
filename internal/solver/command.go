// Package solver builds the command line of the ACO solver for a job.
package solver

import (
	"strconv"
	"strings"

	"thop-experiments/internal/domain"
)

// Fixed flags of the invocation contract.
const (
	ModeFlag  = "--mmas"
	TriesFlag = "--tries"
	Tries     = "1"
	LogFlag   = "--log"
)

// Binaries names the solver executable per variant.
type Binaries struct {
	Tuned string
	Plain string
}

func (b Binaries) For(v domain.Variant) string {
	if v.Tuned() {
		return b.Tuned
	}
	return b.Plain
}

type Command struct {
	Path string
	Args []string
}

// Build returns
//
//	<binary> --mmas --tries 1 --seed S --time T --inputfile I --outputfile O [flag value]... --log
func Build(job domain.Job, bin Binaries) Command {
	args := []string{
		ModeFlag,
		TriesFlag, Tries,
		"--seed", strconv.Itoa(job.Seed),
		"--time", strconv.FormatFloat(job.TimeBudget, 'f', 1, 64),
		"--inputfile", job.InputPath,
		"--outputfile", job.OutputPath,
	}
	args = append(args, job.Params.Args()...)
	args = append(args, LogFlag)

	return Command{Path: bin.For(job.Variant), Args: args}
}

// String renders the command as a single shell-like line, for plans and logs.
func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}
