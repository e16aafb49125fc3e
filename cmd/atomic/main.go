// Package main is the single-binary entrypoint for atomic.
package main

import "github.com/salmancert/atomic/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
