// Package cmd provides the command-line interface for tokengen.
// It contains all cobra commands and their implementations.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tokengen-cli/tokengen/internal/di"
)

var (
	// Version is set at build time via ldflags
	Version = "dev"
)

// RootCommand represents the root CLI command
type RootCommand struct {
	container *di.Container
	cmd       *cobra.Command

	// Subcommands
	getCmd      *GetCommand
	profilesCmd *ProfilesCommand
}

// NewRootCommand creates a new root command
func NewRootCommand() *RootCommand {
	r := &RootCommand{}

	r.cmd = &cobra.Command{
		Use:   "tokengen",
		Short: "tokengen - Generate Azure AD bearer tokens",
		Long: `tokengen acquires and caches OAuth2 bearer tokens from an Azure AD style
authorization server.

App profiles authenticate as a service principal using the client-credentials
grant. User profiles authenticate a person using the device-code grant, with
silent refresh when possible. Issued tokens are cached on disk and reused
until they expire.

To get started, run:
  tokengen profiles add - Store a credential profile
  tokengen get          - Print a token for the default profile`,
		Version:       Version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.initialize(cmd)
		},
	}

	// Global flags
	r.cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	// Initialize subcommands
	r.getCmd = NewGetCommand(r)
	r.profilesCmd = NewProfilesCommand(r)

	// Add subcommands
	r.cmd.AddCommand(r.getCmd.Command())
	r.cmd.AddCommand(r.profilesCmd.Command())

	return r
}

// initialize sets up the DI container
func (r *RootCommand) initialize(cmd *cobra.Command) error {
	// Skip if container is already set (e.g., for testing)
	if r.container != nil {
		return nil
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	var err error
	r.container, err = di.NewContainer(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	return nil
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Container returns the DI container
func (r *RootCommand) Container() *di.Container {
	return r.container
}

// SetContainer sets a custom container (for testing)
func (r *RootCommand) SetContainer(c *di.Container) {
	r.container = c
}

// Execute is the main entry point for the CLI
func Execute() error {
	root := NewRootCommand()
	return root.Execute()
}
