package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEncryptCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt [plaintext]",
		Short: "Encrypt a value with AES-256-GCM",
		Long: `Prints the base64 envelope of the plaintext. Without an argument the
plaintext is read from stdin.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: needsSecure,
		RunE: func(cmd *cobra.Command, args []string) error {
			plaintext, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			envelope, err := a.secure.Encrypt(plaintext)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), envelope)
			return nil
		},
	}
}

func newDecryptCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "decrypt [envelope]",
		Short:       "Decrypt a base64 envelope",
		Args:        cobra.MaximumNArgs(1),
		Annotations: needsSecure,
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			plaintext, err := a.secure.Decrypt(envelope)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), plaintext)
			return nil
		},
	}
}
