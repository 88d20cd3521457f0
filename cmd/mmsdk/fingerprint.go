package main

import (
	"fmt"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/fingerprint"
	"github.com/spf13/cobra"
)

func newFingerprintCommand() *cobra.Command {
	var digest string
	cmd := &cobra.Command{
		Use:   "fingerprint <input>...",
		Short: "Print the hex digest of the inputs joined with \"-\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := fingerprint.ByName(digest)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), fingerprint.Key(h, args...))
			return err
		},
	}
	cmd.Flags().StringVar(&digest, "digest", "sha1", "digest to use: sha1 or sha256")
	return cmd
}
