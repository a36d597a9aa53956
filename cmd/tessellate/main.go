// Command tessellate checks, renders and serves polyomino tessellations
// described in YAML or JSON definition files.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
