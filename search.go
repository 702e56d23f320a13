package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iamLiquidX/SearchX/notify"
	"github.com/iamLiquidX/SearchX/tools"
	"github.com/iamLiquidX/SearchX/types"
)

func newSearchCmd() *cobra.Command {
	var slackChannel string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run one search and print the reply",
		Example: `searchx search the matrix
searchx search -- -d season 2
searchx search --slack-channel C0123 report 2024`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, clients, pipeline, err := setup(cmd.Context())
			if err != nil {
				return err
			}

			reply, err := pipeline.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				slog.Error("search failed", "error", err)
				return errors.New(tools.FailureMessage(err))
			}

			out, err := types.MarshalResponse(types.NewSearchResponse(reply))
			if err != nil {
				return fmt.Errorf("failed to marshal response: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			channel := slackChannel
			if channel == "" {
				channel = cfg.Slack.Channel
			}
			if channel == "" {
				return nil
			}
			if _, err := notify.NewSlack(clients.ForSlack().API).Post(cmd.Context(), channel, reply); err != nil {
				return err
			}
			slog.Info("reply posted to slack", "channel", channel)
			return nil
		},
	}
	cmd.Flags().StringVar(&slackChannel, "slack-channel", "", "also post the reply to this Slack channel (overrides slack.channel)")
	return cmd
}
