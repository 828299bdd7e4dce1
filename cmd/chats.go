package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/zhubert/chatpane/internal/api"
)

var (
	chatsPage   int
	chatsOutput string
)

var chatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "List one page of conversations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runChats(cmd.Context(), api.New(cfg), chatsPage, chatsOutput, cmd.OutOrStdout())
	},
}

func init() {
	chatsCmd.Flags().IntVarP(&chatsPage, "page", "p", 1, "Page to list")
	chatsCmd.Flags().StringVarP(&chatsOutput, "output", "o", outputTable, "Output format: table, json or yaml")
	rootCmd.AddCommand(chatsCmd)
}

func runChats(ctx context.Context, client *api.Client, page int, output string, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	convs, err := client.ListChats(ctx, page)
	if err != nil {
		return fmt.Errorf("error listing page %d: %w", page, err)
	}
	return writeOutput(w, output, convs, func(t *tablewriter.Table) {
		t.SetHeader([]string{"ID", "Name", "Email"})
		for _, c := range convs {
			t.Append([]string{c.ID.String(), cell(c.Creator.DisplayName()), c.Creator.Email})
		}
	})
}
