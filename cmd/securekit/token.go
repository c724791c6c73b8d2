package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue and verify signed tokens",
	}
	cmd.AddCommand(newTokenIssueCmd(a), newTokenRefreshCmd(a), newTokenVerifyCmd(a))
	return cmd
}

func newTokenIssueCmd(a *app) *cobra.Command {
	var (
		userID string
		role   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:         "issue",
		Short:       "Issue an access token",
		Args:        cobra.NoArgs,
		Annotations: needsSecure,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.secure.IssueAccessToken(userID, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "user ID")
	cmd.Flags().StringVarP(&role, "role", "r", "", "role")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "lifetime (default: jwt.access_token_ttl)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func newTokenRefreshCmd(a *app) *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:         "refresh",
		Short:       "Issue a refresh token",
		Args:        cobra.NoArgs,
		Annotations: needsSecure,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := a.secure.IssueRefreshToken(userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "user ID")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newTokenVerifyCmd(a *app) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:         "verify <token>",
		Short:       "Verify a token and print its claims",
		Args:        cobra.ExactArgs(1),
		Annotations: needsSecure,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if refresh {
				userID, err := a.secure.VerifyRefreshToken(args[0])
				if err != nil {
					failure(cmd, "refresh token rejected")
					return err
				}
				success(cmd, "refresh token valid")
				fmt.Fprintln(out, "  User:    "+color.CyanString(userID))
				return nil
			}

			claims, err := a.secure.ParseToken(args[0])
			if err != nil {
				failure(cmd, "token rejected")
				return err
			}
			success(cmd, "token valid")
			fmt.Fprintln(out, "  User:    "+color.CyanString(claims.UserID))
			fmt.Fprintln(out, "  Role:    "+color.CyanString(claims.Role))
			fmt.Fprintln(out, "  Issuer:  "+claims.Issuer)
			fmt.Fprintln(out, "  ID:      "+color.YellowString(claims.ID))
			fmt.Fprintln(out, "  Issued:  "+formatTime(claims.IssuedAt.Time))
			fmt.Fprintln(out, "  Expires: "+formatTime(claims.ExpiresAt.Time))
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "verify a refresh token")
	return cmd
}
