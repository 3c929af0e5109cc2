// Package main provides the CLI entrypoint for cad-translator.
//
// cad-translator moves CAD models between the internal model and a host
// document:
//   - export writes the host document built from a YAML model file
//   - roundtrip exports a model file, imports it back and writes the result
//   - inspect prints the correspondence tables built during export
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
