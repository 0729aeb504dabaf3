package main

// Exit codes for the casepdf CLI. Any failure, whether parse, search or
// render, maps to 1.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
