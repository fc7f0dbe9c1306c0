package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/pantrylist/internal/auth"
)

func newTokenCmd(root *rootOptions) *cobra.Command {
	var (
		sub   string
		email string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token",
		Long: `Signs an access token with PANTRYLIST_JWT_SECRET, for talking to a
local list service without the hosted sign-in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if root.cfg.JWTSecret == "" {
				return errors.New("PANTRYLIST_JWT_SECRET is not set")
			}
			tok, err := auth.NewIssuer(root.cfg.JWTSecret, root.cfg.JWTAudience).Issue(sub, email, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&sub, "sub", "", "user id to put in the token")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	cmd.MarkFlagRequired("sub")
	return cmd
}
