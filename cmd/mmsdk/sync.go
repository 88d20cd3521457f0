package main

import (
	"fmt"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/infrastructure/mobileapi"
	"github.com/spf13/cobra"
)

func newSyncCommand() *cobra.Command {
	var (
		known []string
		flush bool
	)
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch pending messages, queue their delivery reports and print them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			messages, err := a.client.SyncMessages(ctx, &mobileapi.SyncRequest{
				PushRegistrationID: a.cfg.Reports.PushRegistrationID,
				MessageIDs:         known,
			})
			if err != nil {
				return err
			}

			for _, msg := range messages {
				if _, err := a.reports.MessageReceived(ctx, msg); err != nil {
					return err
				}
				line, err := a.mapper.MessageToString(msg)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}
			a.logger.Info("messages synced", "count", len(messages))

			if !flush {
				return nil
			}
			result, err := a.reports.Flush(ctx)
			a.logger.Info("reports flushed", "sent", result.Sent, "failed", result.Failed, "deferred", result.Deferred)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&known, "known", nil, "message IDs already on the device")
	cmd.Flags().BoolVar(&flush, "flush", true, "send queued reports after syncing")
	return cmd
}
