// memerender is the headless companion of the desktop app: it lists
// suggestions, manages the theme preference and runs one-shot generations.
package main

import (
	"os"

	"memerender/cmd/memerender/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
