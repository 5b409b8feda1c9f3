// Package main is the entry point for the tokengen CLI.
// tokengen acquires and caches OAuth2 bearer tokens from an Azure AD style
// authorization server.
package main

import (
	"errors"
	"os"

	"github.com/tokengen-cli/tokengen/internal/auth"
	"github.com/tokengen-cli/tokengen/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Exit-code mapping happens here and nowhere else: the HTTP status
		// for protocol errors, small fixed codes otherwise.
		var acqErr *auth.Error
		if errors.As(err, &acqErr) {
			os.Exit(acqErr.ExitCode())
		}
		os.Exit(1)
	}
}
