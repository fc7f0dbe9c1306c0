package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/pantrylist/internal/apiclient"
	"github.com/dukerupert/pantrylist/internal/auth"
	"github.com/dukerupert/pantrylist/internal/config"
	"github.com/dukerupert/pantrylist/internal/logging"
)

type rootOptions struct {
	cfg      config.Client
	apiURL   string
	token    string
	logLevel string
	timeout  time.Duration
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{cfg: config.LoadClient()}

	cmd := &cobra.Command{
		Use:          "pantrylist",
		Short:        "Draft and manage grocery lists",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logger = logging.New(cmd.ErrOrStderr(), opts.logLevel, "text")
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.apiURL, "api-url", opts.cfg.APIURL, "list service base URL (env PANTRYLIST_API_URL)")
	pf.StringVar(&opts.token, "token", opts.cfg.AccessToken, "access token (env PANTRYLIST_ACCESS_TOKEN)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	pf.DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")

	cmd.AddCommand(
		newNewCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newPinCmd(opts),
		newRemoveCmd(opts),
		newTokenCmd(opts),
	)
	return cmd
}

func (o *rootOptions) client() *apiclient.Client {
	return apiclient.New(apiclient.Config{BaseURL: o.apiURL, Timeout: o.timeout})
}

// accessToken returns the configured token or a sign-in hint.
func (o *rootOptions) accessToken(cmd *cobra.Command) (string, error) {
	tok, err := auth.StaticToken(o.token).AccessToken(cmd.Context())
	if err != nil {
		return "", fmt.Errorf("%w: pass --token or set PANTRYLIST_ACCESS_TOKEN", err)
	}
	return tok, nil
}
