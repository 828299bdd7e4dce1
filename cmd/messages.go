package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/zhubert/chatpane/internal/api"
	"github.com/zhubert/chatpane/internal/chat"
)

var messagesOutput string

var messagesCmd = &cobra.Command{
	Use:   "messages <chat-id>",
	Short: "Print the messages of one conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runMessages(cmd.Context(), api.New(cfg), chat.ID(args[0]), messagesOutput, cmd.OutOrStdout())
	},
}

func init() {
	messagesCmd.Flags().StringVarP(&messagesOutput, "output", "o", outputTable, "Output format: table, json or yaml")
	rootCmd.AddCommand(messagesCmd)
}

func runMessages(ctx context.Context, client *api.Client, chatID chat.ID, output string, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	messages, err := client.ListMessages(ctx, chatID)
	if err != nil {
		return fmt.Errorf("error loading conversation %s: %w", chatID, err)
	}
	return writeOutput(w, output, messages, func(t *tablewriter.Table) {
		t.SetHeader([]string{"ID", "Time", "Sender", "Text"})
		for _, m := range messages {
			t.Append([]string{m.ID.String(), chat.FormatTimestamp(m.CreatedAt), cell(m.Sender.Name), cell(m.Text)})
		}
	})
}
