package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFlushCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Send every queued delivery and seen report once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.reports.Flush(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "sent=%d failed=%d deferred=%d\n",
				result.Sent, result.Failed, result.Deferred)
			return err
		},
	}
}
