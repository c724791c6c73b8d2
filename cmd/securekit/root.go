package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "securekit",
		Short: "Hash passwords, encrypt values and manage tokens",
		Long: `securekit exercises the credential subsystem from the command line.

Configuration comes from config.yml, .env files and the environment:
  JWT_SECRET       token signing secret (generated per run when unset)
  ENCRYPTION_KEY   32 characters or base64 of 32 bytes (generated when unset)
  DATABASE_URL     required

Examples:
  # Hash a password typed at the terminal
  securekit hash

  # Verify a password piped on stdin
  echo -n "s3cret" | securekit verify --password-stdin "<hash>"

  # Issue and verify an access token
  securekit token issue --user u1 --role admin
  securekit token verify "<token>"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.noColor {
				color.NoColor = true
			}
			if cmd.Annotations[annotationSecure] == "" {
				return nil
			}
			return a.init(cmd.Context())
		},
	}

	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "path to config.yml")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "path to a .env file")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newHashCmd(a),
		newVerifyCmd(a),
		newEncryptCmd(a),
		newDecryptCmd(a),
		newTokenCmd(a),
		newRandomCmd(a),
		newDescribeCmd(a),
		newVersionCmd(),
	)
	return root
}
