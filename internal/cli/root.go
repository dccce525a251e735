// Package cli implements rolesctl, a terminal front-end for the realm roles
// page.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aussiebroadwan/realmadmin/internal/console/i18n"
	"github.com/aussiebroadwan/realmadmin/internal/console/navigation"
	"github.com/aussiebroadwan/realmadmin/internal/console/roles"
	"github.com/aussiebroadwan/realmadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/realmadmin/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
var BuildVersion = "v0.1.0"

const envPrefix = "ROLESCTL"

// Flag names; also the viper keys and, upper-cased with ROLESCTL_, the
// environment variables.
const (
	flagConfig       = "config"
	flagAdminURL     = "admin-url"
	flagRealm        = "realm"
	flagClientID     = "client-id"
	flagClientSecret = "client-secret"
	flagLang         = "lang"
	flagConsoleURL   = "console-url"
	flagLogLevel     = "log-level"
)

var errMissingCredentials = errors.New("client id and secret are required (--client-id/--client-secret or ROLESCTL_CLIENT_ID/ROLESCTL_CLIENT_SECRET)")

// env carries what every subcommand needs once the root has connected.
type env struct {
	v       *viper.Viper
	logger  *slog.Logger
	t       *i18n.Localizer
	client  *adminsdk.RolesClient
	sink    *alertWriter
	history *navigation.Recorder
	page    *roles.Page
}

// NewRootCommand builds the rolesctl command tree.
func NewRootCommand() *cobra.Command {
	e := &env{v: viper.New()}

	root := &cobra.Command{
		Use:           "rolesctl",
		Short:         "Manage the roles of a realm",
		Long:          "rolesctl lists, searches and deletes realm roles through the admin API.",
		Version:       BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String(flagConfig, "", "config file (yaml, json or toml)")
	pf.String(flagAdminURL, "http://localhost:8080", "admin API base URL")
	pf.String(flagRealm, "master", "realm to operate on")
	pf.String(flagClientID, "", "admin API client id")
	pf.String(flagClientSecret, "", "admin API client secret")
	pf.String(flagLang, "", "output language (default from LANG)")
	pf.String(flagConsoleURL, "", "web console URL used to print navigation targets")
	pf.String(flagLogLevel, "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newListCommand(e),
		newDeleteCommand(e),
		newCreateCommand(e),
	)

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return e.setup(cmd)
	}

	return root
}

func (e *env) setup(cmd *cobra.Command) error {
	if err := e.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	e.v.SetEnvPrefix(envPrefix)
	e.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	e.v.AutomaticEnv()

	if file := e.v.GetString(flagConfig); file != "" {
		e.v.SetConfigFile(file)
		if err := e.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	e.logger = slogx.New(slogx.Config{
		Service: "rolesctl",
		Version: BuildVersion,
		Level:   e.v.GetString(flagLogLevel),
		Format:  "text",
		Output:  cmd.ErrOrStderr(),
	})

	bundle, err := i18n.NewBundle()
	if err != nil {
		return err
	}
	e.t = bundle.Translator(bundle.Match(e.v.GetString(flagLang), langFromLocale(os.Getenv("LANG"))))

	id, secret := e.v.GetString(flagClientID), e.v.GetString(flagClientSecret)
	if id == "" || secret == "" {
		return errMissingCredentials
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sdk := adminsdk.NewSDKClient(e.v.GetString(flagAdminURL))
	session, err := sdk.AuthenticateWithClientCredentials(ctx, id, secret,
		[]string{adminsdk.ScopeRolesRead, adminsdk.ScopeRolesWrite})
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	e.logger.Debug("authenticated", "client_id", id, "scopes", session.Scopes())

	e.client = session.Roles(e.v.GetString(flagRealm))
	e.sink = &alertWriter{w: cmd.OutOrStdout()}
	e.history = &navigation.Recorder{}
	e.page = roles.New(roles.Deps{
		API:     e.client,
		Alerts:  e.sink,
		History: e.history,
		T:       e.t,
	})
	return nil
}

// langFromLocale turns a POSIX locale such as de_DE.UTF-8 into a language
// tag.
func langFromLocale(locale string) string {
	locale, _, _ = strings.Cut(locale, ".")
	return strings.ReplaceAll(locale, "_", "-")
}
