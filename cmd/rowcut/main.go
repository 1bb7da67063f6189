package main

import (
	"fmt"
	"os"

	"github.com/coral-mesh/rowcut/internal/cli"
	rcerrors "github.com/coral-mesh/rowcut/internal/errors"
)

func main() {
	if err := cli.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(rcerrors.ExitCode(err))
	}
}
