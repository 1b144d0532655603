package main

import (
	"os"

	"github.com/cristianoliveira/docview/cmd"
	"github.com/cristianoliveira/docview/internal/errors"
	"github.com/cristianoliveira/docview/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		errors.ReportFailure(errors.NewDefaultCLIHandler(), err)
		logging.Error("command failed", "error", err)
		os.Exit(1)
	}
}
