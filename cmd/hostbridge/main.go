// Command hostbridge previews component trees on the in-memory host.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/hostbridge/cmd/hostbridge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
