package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/roach88/stufflog/internal/cli"
)

func main() {
	// A .env next to the invocation is optional; absence is not an error.
	_ = godotenv.Load()

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if !cli.Rendered(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
