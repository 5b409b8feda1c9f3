package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tokengen-cli/tokengen/internal/profile"
	iface "github.com/tokengen-cli/tokengen/internal/service/interface"
)

// GetCommand represents the get command
type GetCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewGetCommand creates a new get command
func NewGetCommand(root *RootCommand) *GetCommand {
	g := &GetCommand{
		root: root,
	}

	g.cmd = &cobra.Command{
		Use:   "get",
		Short: "Acquire a bearer token",
		Long: `Acquire an OAuth2 bearer token for a stored or ad-hoc profile.

The token is served from the on-disk cache when still valid. Expired user
tokens are refreshed silently when possible; otherwise a full authentication
flow runs. Flags override the stored profile field by field.

Examples:
  tokengen get
  tokengen get -p my-service -f raw
  tokengen get --type App -c <client-id> -s <secret> -t <tenant> -a https://login.microsoftonline.com -r <resource>`,
		RunE: g.Run,
	}

	flags := g.cmd.Flags()
	flags.StringP("profile", "p", "", "Profile name (defaults to the configured default profile)")
	flags.StringP("client-id", "c", "", "Client ID override")
	flags.StringP("secret", "s", "", "Client secret override (App profiles)")
	flags.StringP("tenant", "t", "", "Tenant override")
	flags.StringP("authority", "a", "", "Authority base URL override")
	flags.StringP("resource", "r", "", "Resource override (App profiles)")
	flags.String("scope", "", "Scope override (User profiles)")
	flags.String("type", "", "Profile type (App or User) when no stored profile matches")
	flags.StringP("token", "k", "access-or-id", "Token to print (access, id, access-or-id, id-or-access)")
	flags.StringP("format", "f", "header", "Output format (header or raw)")

	return g
}

// Command returns the underlying cobra command
func (g *GetCommand) Command() *cobra.Command {
	return g.cmd
}

// Run executes the get command
func (g *GetCommand) Run(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	selectorFlag, _ := flags.GetString("token")
	selector, err := profile.ParseSelector(selectorFlag)
	if err != nil {
		return err
	}

	format, _ := flags.GetString("format")
	if format != "header" && format != "raw" {
		return fmt.Errorf("unknown format %q (expected header or raw)", format)
	}

	req := iface.TokenRequest{Selector: selector}
	req.Profile, _ = flags.GetString("profile")
	req.Type, _ = flags.GetString("type")
	req.ClientID, _ = flags.GetString("client-id")
	req.Secret, _ = flags.GetString("secret")
	req.Tenant, _ = flags.GetString("tenant")
	req.Authority, _ = flags.GetString("authority")
	req.Resource, _ = flags.GetString("resource")
	req.Scope, _ = flags.GetString("scope")

	tokenService := g.root.Container().TokenService()

	token, err := tokenService.GetToken(cmd.Context(), req)
	if err != nil {
		return err
	}

	// No trailing newline so the output can be captured verbatim.
	if format == "header" {
		fmt.Fprintf(cmd.OutOrStdout(), "Authorization: Bearer %s", token)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), token)
	}
	return nil
}
