package main

import (
	"os"
)

// Main entry point. cobra has already printed the error by the time
// Execute returns it.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
