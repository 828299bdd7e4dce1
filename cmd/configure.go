package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	huh "charm.land/huh/v2"
	"github.com/spf13/cobra"
	"github.com/zhubert/chatpane/internal/config"
	"github.com/zhubert/chatpane/internal/ui"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Edit the config file interactively",
	Args:  cobra.NoArgs,
	RunE:  runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

// configureAnswers holds the form values as the user typed them
type configureAnswers struct {
	BaseURL       string
	MaxPage       string
	Timeout       string
	SlowLoad      string
	Theme         string
	Notifications bool
}

func answersFromConfig(cfg *config.Config) configureAnswers {
	theme := cfg.GetTheme()
	if theme == "" {
		theme = string(ui.DefaultTheme)
	}
	return configureAnswers{
		BaseURL:       cfg.GetBaseURL(),
		MaxPage:       strconv.Itoa(cfg.GetMaxPage()),
		Timeout:       strconv.Itoa(int(cfg.GetRequestTimeout().Seconds())),
		SlowLoad:      strconv.Itoa(int(cfg.GetSlowLoadThreshold().Seconds())),
		Theme:         theme,
		Notifications: cfg.GetNotificationsEnabled(),
	}
}

// apply copies the answers into cfg and validates the result
func (a configureAnswers) apply(cfg *config.Config) error {
	maxPage, err := strconv.Atoi(strings.TrimSpace(a.MaxPage))
	if err != nil {
		return fmt.Errorf("max page: %q is not a number", a.MaxPage)
	}
	timeout, err := strconv.Atoi(strings.TrimSpace(a.Timeout))
	if err != nil {
		return fmt.Errorf("request timeout: %q is not a number", a.Timeout)
	}
	slow, err := strconv.Atoi(strings.TrimSpace(a.SlowLoad))
	if err != nil {
		return fmt.Errorf("slow load: %q is not a number", a.SlowLoad)
	}

	cfg.SetBaseURL(strings.TrimSpace(a.BaseURL))
	cfg.SetMaxPage(maxPage)
	cfg.SetRequestTimeoutSeconds(timeout)
	cfg.SetSlowLoadSeconds(slow)
	cfg.SetTheme(a.Theme)
	cfg.SetNotificationsEnabled(a.Notifications)
	return cfg.Validate()
}

func validateBaseURL(s string) error {
	if err := config.ValidateBaseURL(s); err != nil {
		return fmt.Errorf("enter an absolute URL such as %s", config.DefaultBaseURL)
	}
	return nil
}

func validateIntAtLeast(lowest int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("enter a whole number")
		}
		if n < lowest {
			return fmt.Errorf("must be at least %d", lowest)
		}
		return nil
	}
}

func buildConfigureForm(a *configureAnswers) *huh.Form {
	themeOptions := make([]huh.Option[string], 0, len(ui.ThemeNames()))
	for _, name := range ui.ThemeNames() {
		themeOptions = append(themeOptions, huh.NewOption(ui.GetTheme(name).Name, string(name)))
	}

	apiGroup := huh.NewGroup(
		huh.NewInput().
			Title("API base URL").
			Description("Conversations are read from {base}/api/get_all_chats").
			Placeholder(config.DefaultBaseURL).
			Validate(validateBaseURL).
			Value(&a.BaseURL),
		huh.NewInput().
			Title("Last page").
			Description("The pager stops here").
			CharLimit(5).
			Validate(validateIntAtLeast(1)).
			Value(&a.MaxPage),
		huh.NewInput().
			Title("Request timeout (seconds)").
			CharLimit(3).
			Validate(validateIntAtLeast(1)).
			Value(&a.Timeout),
	)

	displayGroup := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themeOptions...).
			Value(&a.Theme),
		huh.NewConfirm().
			Title("Desktop notifications").
			Description("Notify when a load takes longer than the threshold below").
			Value(&a.Notifications),
		huh.NewInput().
			Title("Slow load threshold (seconds)").
			Description("0 turns notifications off").
			CharLimit(3).
			Validate(validateIntAtLeast(0)).
			Value(&a.SlowLoad),
	)

	return huh.NewForm(apiGroup, displayGroup).WithTheme(ui.FormTheme())
}

func runConfigure(cmd *cobra.Command, args []string) error {
	path, err := config.DefaultPath()
	if err != nil {
		return err
	}
	// Env overrides are left out so they are not written back to the file
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	answers := answersFromConfig(cfg)
	if err := buildConfigureForm(&answers).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		return err
	}
	if err := answers.apply(cfg); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", cfg.FilePath())
	return nil
}
