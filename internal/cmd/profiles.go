package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/tokengen-cli/tokengen/internal/profile"
)

// ProfilesCommand represents the profiles command group
type ProfilesCommand struct {
	root *RootCommand
	cmd  *cobra.Command

	// Subcommands
	listCmd    *ProfilesListCommand
	showCmd    *ProfilesShowCommand
	addCmd     *ProfilesAddCommand
	removeCmd  *ProfilesRemoveCommand
	defaultCmd *ProfilesDefaultCommand
}

// NewProfilesCommand creates a new profiles command
func NewProfilesCommand(root *RootCommand) *ProfilesCommand {
	p := &ProfilesCommand{
		root: root,
	}

	p.cmd = &cobra.Command{
		Use:   "profiles",
		Short: "Manage credential profiles",
		Long: `Manage the credential profiles stored in the tokengen configuration file.

A profile names the client, tenant, authority and grant parameters used to
request a token. App profiles carry a client secret and target resource;
User profiles carry a scope set and sign in interactively.`,
	}

	// Initialize subcommands
	p.listCmd = NewProfilesListCommand(p)
	p.showCmd = NewProfilesShowCommand(p)
	p.addCmd = NewProfilesAddCommand(p)
	p.removeCmd = NewProfilesRemoveCommand(p)
	p.defaultCmd = NewProfilesDefaultCommand(p)

	// Add subcommands
	p.cmd.AddCommand(p.listCmd.Command())
	p.cmd.AddCommand(p.showCmd.Command())
	p.cmd.AddCommand(p.addCmd.Command())
	p.cmd.AddCommand(p.removeCmd.Command())
	p.cmd.AddCommand(p.defaultCmd.Command())

	return p
}

// Command returns the underlying cobra command
func (p *ProfilesCommand) Command() *cobra.Command {
	return p.cmd
}

// ProfilesListCommand lists stored profiles
type ProfilesListCommand struct {
	parent *ProfilesCommand
	cmd    *cobra.Command
}

// NewProfilesListCommand creates a new profiles list command
func NewProfilesListCommand(parent *ProfilesCommand) *ProfilesListCommand {
	l := &ProfilesListCommand{
		parent: parent,
	}

	l.cmd = &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		RunE:  l.Run,
	}

	return l
}

// Command returns the underlying cobra command
func (l *ProfilesListCommand) Command() *cobra.Command {
	return l.cmd
}

// Run executes the profiles list command
func (l *ProfilesListCommand) Run(cmd *cobra.Command, args []string) error {
	profileService := l.parent.root.Container().ProfileService()

	records := profileService.List()
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No profiles stored. Run 'tokengen profiles add' to create one.")
		return nil
	}

	defaultName := profileService.DefaultName()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tCLIENT ID\tTENANT")
	for _, rec := range records {
		name := rec.Name
		if rec.Name == defaultName {
			name += " (default)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, rec.Type, rec.ClientID, rec.Tenant)
	}
	return w.Flush()
}

// ProfilesShowCommand shows one stored profile
type ProfilesShowCommand struct {
	parent *ProfilesCommand
	cmd    *cobra.Command
}

// NewProfilesShowCommand creates a new profiles show command
func NewProfilesShowCommand(parent *ProfilesCommand) *ProfilesShowCommand {
	s := &ProfilesShowCommand{
		parent: parent,
	}

	s.cmd = &cobra.Command{
		Use:   "show <name>",
		Short: "Show a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE:  s.Run,
	}

	return s
}

// Command returns the underlying cobra command
func (s *ProfilesShowCommand) Command() *cobra.Command {
	return s.cmd
}

// Run executes the profiles show command
func (s *ProfilesShowCommand) Run(cmd *cobra.Command, args []string) error {
	profileService := s.parent.root.Container().ProfileService()

	rec, found := profileService.Get(args[0])
	if !found {
		return fmt.Errorf("profile %q not found", args[0])
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", rec.Name)
	fmt.Fprintf(w, "Type:\t%s\n", rec.Type)
	fmt.Fprintf(w, "ClientId:\t%s\n", rec.ClientID)
	if rec.Secret != "" {
		fmt.Fprintf(w, "Secret:\t%s\n", maskSecret(rec.Secret))
	}
	fmt.Fprintf(w, "Tenant:\t%s\n", rec.Tenant)
	fmt.Fprintf(w, "Authority:\t%s\n", rec.Authority)
	if rec.Resource != "" {
		fmt.Fprintf(w, "Resource:\t%s\n", rec.Resource)
	}
	if rec.Scope != "" {
		fmt.Fprintf(w, "Scope:\t%s\n", rec.Scope)
	}
	return w.Flush()
}

func maskSecret(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:2] + "****" + secret[len(secret)-2:]
}

// ProfilesAddCommand interactively creates a profile
type ProfilesAddCommand struct {
	parent *ProfilesCommand
	cmd    *cobra.Command
}

// NewProfilesAddCommand creates a new profiles add command
func NewProfilesAddCommand(parent *ProfilesCommand) *ProfilesAddCommand {
	a := &ProfilesAddCommand{
		parent: parent,
	}

	a.cmd = &cobra.Command{
		Use:   "add",
		Short: "Store a new credential profile",
		Long: `Interactively store a new credential profile.

Example:
  tokengen profiles add`,
		RunE: a.Run,
	}

	return a
}

// Command returns the underlying cobra command
func (a *ProfilesAddCommand) Command() *cobra.Command {
	return a.cmd
}

// Run executes the profiles add command
func (a *ProfilesAddCommand) Run(cmd *cobra.Command, args []string) error {
	rec := profile.Record{}

	if err := survey.AskOne(&survey.Select{
		Message: "Profile type:",
		Options: []string{string(profile.KindApp), string(profile.KindUser)},
	}, &rec.Type); err != nil {
		return err
	}

	if err := survey.AskOne(&survey.Input{
		Message: "Profile name:",
	}, &rec.Name, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	if err := survey.AskOne(&survey.Input{
		Message: "Client ID:",
	}, &rec.ClientID, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	if err := survey.AskOne(&survey.Input{
		Message: "Tenant:",
	}, &rec.Tenant, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	if err := survey.AskOne(&survey.Input{
		Message: "Authority:",
		Default: "https://login.microsoftonline.com",
	}, &rec.Authority); err != nil {
		return err
	}

	switch profile.Kind(rec.Type) {
	case profile.KindApp:
		if err := survey.AskOne(&survey.Password{
			Message: "Client secret:",
		}, &rec.Secret, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
		if err := survey.AskOne(&survey.Input{
			Message: "Resource:",
		}, &rec.Resource, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	case profile.KindUser:
		if err := survey.AskOne(&survey.Input{
			Message: "Scope (space separated):",
		}, &rec.Scope, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	profileService := a.parent.root.Container().ProfileService()
	if err := profileService.Add(rec); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Profile %q stored.\n", rec.Name)
	return nil
}

// ProfilesRemoveCommand removes a stored profile
type ProfilesRemoveCommand struct {
	parent *ProfilesCommand
	cmd    *cobra.Command
}

// NewProfilesRemoveCommand creates a new profiles remove command
func NewProfilesRemoveCommand(parent *ProfilesCommand) *ProfilesRemoveCommand {
	r := &ProfilesRemoveCommand{
		parent: parent,
	}

	r.cmd = &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE:  r.Run,
	}

	r.cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	return r
}

// Command returns the underlying cobra command
func (r *ProfilesRemoveCommand) Command() *cobra.Command {
	return r.cmd
}

// Run executes the profiles remove command
func (r *ProfilesRemoveCommand) Run(cmd *cobra.Command, args []string) error {
	name := args[0]

	if skip, _ := cmd.Flags().GetBool("yes"); !skip {
		confirmed := false
		if err := survey.AskOne(&survey.Confirm{
			Message: fmt.Sprintf("Remove profile %q?", name),
		}, &confirmed); err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	profileService := r.parent.root.Container().ProfileService()
	if err := profileService.Remove(name); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Profile %q removed.\n", name)
	return nil
}

// ProfilesDefaultCommand sets the default profile
type ProfilesDefaultCommand struct {
	parent *ProfilesCommand
	cmd    *cobra.Command
}

// NewProfilesDefaultCommand creates a new profiles default command
func NewProfilesDefaultCommand(parent *ProfilesCommand) *ProfilesDefaultCommand {
	d := &ProfilesDefaultCommand{
		parent: parent,
	}

	d.cmd = &cobra.Command{
		Use:   "default <name>",
		Short: "Set the default profile",
		Args:  cobra.ExactArgs(1),
		RunE:  d.Run,
	}

	return d
}

// Command returns the underlying cobra command
func (d *ProfilesDefaultCommand) Command() *cobra.Command {
	return d.cmd
}

// Run executes the profiles default command
func (d *ProfilesDefaultCommand) Run(cmd *cobra.Command, args []string) error {
	profileService := d.parent.root.Container().ProfileService()

	if err := profileService.SetDefault(args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Default profile set to %q.\n", args[0])
	return nil
}
