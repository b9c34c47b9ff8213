// Package main is the entry point for the Code Vault server.
//
// MAIN PACKAGE IN GO:
// The main package should be kept minimal. Its job is to read configuration,
// create the logger, and hand both to internal/server. All actual logic
// lives in imported packages, which keeps it testable.
//
// The command tree lives in root.go (cobra); main only runs it and turns
// an error into a non-zero exit status.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
