package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/salonboard/internal/config"
	"github.com/javiermolinar/salonboard/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Show, create or change the configuration file.

Without a subcommand, prints the current configuration.

Example:
  salonboard config
  salonboard config init
  salonboard config set schedule.slot_height 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n\n", config.DefaultConfigPath())
			printConfig(cmd.OutOrStdout(), a.config)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printConfig(cmd.OutOrStdout(), a.config)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd.OutOrStdout(), config.DefaultConfigPath(), force)
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	cmd.AddCommand(initCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one configuration value",
		Long: fmt.Sprintf(`Change one configuration value and save the file.

Keys:
  %s`, strings.Join(config.Keys(), "\n  ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.OutOrStdout(), config.DefaultConfigPath(), args[0], args[1])
		},
	})

	return cmd
}

func runConfigInit(out io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		if !promptYesNo(fmt.Sprintf("%s exists. Overwrite with defaults?", path)) {
			return nil
		}
	}
	if err := config.Default().SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(out, "Created %s\n", path)
	return nil
}

func runConfigSet(out io.Writer, path, key, value string) error {
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if strings.EqualFold(key, "ui.theme") && !theme.IsAvailable(strings.ToLower(value)) {
		return fmt.Errorf("invalid theme %q. Available: %s", value, strings.Join(theme.Available(), ", "))
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(out, "%s = %s\n", key, value)
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	section := ""
	for _, key := range config.Keys() {
		name, field, _ := strings.Cut(key, ".")
		if name != section {
			if section != "" {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "[%s]\n", name)
			section = name
		}
		value, err := cfg.Get(key)
		if err != nil {
			continue
		}
		if field == "api_key" || field == "redis_password" {
			value = mask(value)
		}
		fmt.Fprintf(out, "  %-22s = %s\n", field, value)
	}
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}
