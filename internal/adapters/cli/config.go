package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spacecolony-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Space Colony configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (COLONY_* prefix, and DATABASE_URL)
2. Config file (colony.yaml)
3. Default values

The current save is stored in ~/.spacecolony/config.json

Examples:
  colony config show
  colony config clear-save`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigClearSaveCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load system config
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			// Load user config
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			// Display configuration
			fmt.Println("Space Colony Configuration")
			fmt.Println("==========================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.CurrentSave != "" {
				fmt.Printf("  Current Save:     %s\n", userCfg.CurrentSave)
			} else {
				fmt.Printf("  Current Save:     (not set)\n")
			}

			fmt.Println("\nGame:")
			if cfg.Game.WorldFile != "" {
				fmt.Printf("  World File:       %s\n", cfg.Game.WorldFile)
			} else {
				fmt.Printf("  World File:       (built-in)\n")
			}
			fmt.Printf("  Save Name:        %s\n", cfg.Game.SaveName)

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}
			fmt.Printf("  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Printf("  Textfile:         %s\n", cfg.Metrics.TextfilePath)
			}

			return nil
		},
	}

	return cmd
}

// newConfigClearSaveCommand creates the config clear-save subcommand
func newConfigClearSaveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear-save",
		Short: "Clear the current save setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.SetCurrentSave(""); err != nil {
				return fmt.Errorf("failed to clear current save: %w", err)
			}

			fmt.Println("✓ Current save cleared")
			fmt.Println("\nPass --save or run 'colony use <save-id>' before playing.")

			return nil
		},
	}

	return cmd
}

// maskPassword masks passwords in connection strings for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}
