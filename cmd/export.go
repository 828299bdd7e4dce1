package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zhubert/chatpane/internal/api"
	"github.com/zhubert/chatpane/internal/export"
)

var (
	exportFrom        int
	exportTo          int
	exportConcurrency int
	exportFormat      string
	exportOut         string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a range of pages with every thread to JSON or YAML",
	Long: `Downloads pages --from..--to and the messages of every conversation on them.
Listing stops early at the first empty page. Output goes to stdout unless -o is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		to := exportTo
		if to == 0 {
			to = cfg.GetMaxPage()
		}
		opts := export.Options{From: exportFrom, To: to, Concurrency: exportConcurrency}
		return runExport(cmd.Context(), api.New(cfg), opts, exportFormat, exportOut, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	exportCmd.Flags().IntVar(&exportFrom, "from", 1, "First page")
	exportCmd.Flags().IntVar(&exportTo, "to", 0, "Last page (defaults to max_page)")
	exportCmd.Flags().IntVar(&exportConcurrency, "concurrency", export.DefaultConcurrency, "Requests in flight at once")
	exportCmd.Flags().StringVar(&exportFormat, "format", string(export.FormatJSON), "Archive format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write the archive to this file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(ctx context.Context, client *api.Client, opts export.Options, formatName, outPath string, stdout, stderr io.Writer) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	archive, err := export.Run(ctx, client, opts)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	archive.Source = client.BaseURL()

	w := stdout
	if outPath != "" {
		f, createErr := os.Create(outPath)
		if createErr != nil {
			return fmt.Errorf("error creating %s: %w", outPath, createErr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if err := export.Encode(w, archive, format); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "Exported %d page(s), %d conversation(s), %d message(s)\n",
		len(archive.Pages), archive.ThreadCount(), archive.MessageCount())
	return nil
}
