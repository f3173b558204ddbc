// Command predictor prints gacha pull odds in the terminal.
package main

import (
	"os"

	"github.com/xtding233/pull-predictor/cmd/predictor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
