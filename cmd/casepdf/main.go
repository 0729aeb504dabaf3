// Command casepdf saves a Philippine Supreme Court decision as PDF.
//
// Usage:
//
//	casepdf --citation "G.R. No. 123456" [-o decision.pdf]
//	casepdf --url https://lawphil.net/judjuris/juri2020/jan2020/gr_123456_2020.html
//	casepdf "G.R. No. 123456"
//	casepdf verify decision.pdf
//	casepdf config show|init
//	casepdf version
package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// maxprocs.Set only fails on an invalid GOMAXPROCS, where runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	if err := newRootCmd(defaultDeps()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCodeFor(err))
	}
}
