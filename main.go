// Package main is the entry point for the ufcpred CLI tool, which ingests
// UFC fight records and builds winner-prediction datasets and models.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/a-bakhtine/UFC-predictor/cmd"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	cmd.Execute()
}
