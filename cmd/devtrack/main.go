package main

import (
	"fmt"
	"os"

	"github.com/pmateos/devtrack/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := cli.NewApp()
	return app.Execute()
}
