// Command exercisectl manages the exercise store and draws workouts from the
// terminal.
package main

import (
	"os"

	"workout-generator-be/internal/config"
)

func main() {
	c := newCLI(os.Stdout, config.Load())
	if err := c.rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
