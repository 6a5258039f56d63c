package main

import (
	"context"
	"errors"
	"os"

	"github.com/kickstart-labs/kickstart/internal/cli"
	"github.com/kickstart-labs/kickstart/internal/prompt"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(context.Background(), version, commit, date); err != nil {
		if errors.Is(err, prompt.ErrCancelled) {
			return
		}
		os.Exit(1)
	}
}
