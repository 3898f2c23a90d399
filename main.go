// Hydrate reminds you to drink water and keeps a plain text log of every
// drink.
package main

import (
	"os"

	"github.com/manav03panchal/hydrate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
