// Command sqlint is a SQL linter and auto-fixer.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
