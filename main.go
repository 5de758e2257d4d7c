// main is the entry point for the helioget CLI.
package main

import (
	"fmt"
	"os"

	"github.com/helioget/helioget/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
