package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zhubert/chatpane/internal/config"
	"github.com/zhubert/chatpane/internal/logger"
)

var (
	skipConfirm bool
	cleanConfig bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove log files (and optionally the config file)",
	Long: `Removes every chatpane log file from /tmp. With --config the saved
configuration is removed too. Prompts for confirmation unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		return runCleanWithReader(os.Stdin, cmd.OutOrStdout(), path)
	},
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cleanCmd.Flags().BoolVar(&cleanConfig, "config", false, "Also remove the config file")
	rootCmd.AddCommand(cleanCmd)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintln(out, "This will clean:")
	fmt.Fprintln(out, "  - All chatpane log files in /tmp")
	if cleanConfig {
		fmt.Fprintf(out, "  - The config file %s\n", configPath)
	}

	if !skipConfirm && !confirm(input, out, "Continue?") {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	// Close our own log file first so it can be removed
	logger.Close()
	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	configRemoved := false
	if cleanConfig {
		if err := os.Remove(configPath); err == nil {
			configRemoved = true
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("error removing config: %w", err)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cleaned:")
	fmt.Fprintf(out, "  - %d log file(s) removed\n", logsCleared)
	if configRemoved {
		fmt.Fprintln(out, "  - config file removed")
	}
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
