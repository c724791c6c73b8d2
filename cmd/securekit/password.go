package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHashCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "hash",
		Short:       "Hash a password with argon2id",
		Long:        "Prints the stored form hash:salt of a password read from the terminal or stdin.",
		Args:        cobra.NoArgs,
		Annotations: needsSecure,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := a.readSecret(cmd, "Password: ")
			if err != nil {
				return err
			}
			if !a.passwordStdin {
				confirm, err := a.readSecret(cmd, "Confirm password: ")
				if err != nil {
					return err
				}
				if confirm != password {
					return fmt.Errorf("passwords do not match")
				}
			}
			stored, err := a.secure.HashPasswordContext(cmd.Context(), password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), stored)
			return nil
		},
	}
	cmd.Flags().BoolVar(&a.passwordStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "verify <hash>",
		Short:       "Check a password against a stored hash",
		Long:        "Exits non-zero when the password does not match the stored hash:salt value.",
		Args:        cobra.ExactArgs(1),
		Annotations: needsSecure,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := a.readSecret(cmd, "Password: ")
			if err != nil {
				return err
			}
			ok, err := a.secure.VerifyPasswordContext(cmd.Context(), password, args[0])
			if err != nil {
				return err
			}
			if !ok {
				failure(cmd, "password does not match")
				return fmt.Errorf("verification failed")
			}
			success(cmd, "password matches")
			return nil
		},
	}
	cmd.Flags().BoolVar(&a.passwordStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}
