// Command cardsim plays card modal presentations against a simulated host.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/cardsheet/cmd/cardsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
