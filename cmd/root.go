package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"github.com/zhubert/chatpane/internal/api"
	"github.com/zhubert/chatpane/internal/app"
	"github.com/zhubert/chatpane/internal/config"
	"github.com/zhubert/chatpane/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	baseURLFlag           string
	envFile               string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "chatpane",
	Short: "Terminal viewer for chat conversations",
	Long: `chatpane pages through the conversations of a chat API and shows the
selected conversation's thread next to the list. It only reads; nothing is sent.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Chat API base URL (overrides config and environment)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file with CHATPANE_* settings")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("chatpane %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("chatpane %s\n", version)
}

// loadConfig reads .env, the config file and the environment, then applies --base-url
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if baseURLFlag != "" {
		cfg.SetBaseURL(baseURLFlag)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	defer logger.Close()
	logger.WithComponent("cmd").Info("starting chatpane", "version", version, "base_url", cfg.GetBaseURL())

	m := app.New(cfg, api.New(cfg), version)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
