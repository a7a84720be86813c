// Package cli provides the command-line interface for the scheduler.
package cli

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/config"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/dates"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/logging"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-08-26"
)

// App holds the application dependencies. The business-day calendar is
// built once here and shared read-only by all per-ticker workers.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Calendar *dates.Calendar
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Calendar: dates.NewCalendar(time.Now().Year(), cfg.ExtraHolidayDates()...),
	}

	rootCmd := &cobra.Command{
		Use:   "divcal",
		Short: "ETF dividend distribution schedule extractor",
		Long: `divcal turns issuer dividend-distribution schedule documents into
per-security schedules of dates and calendar-event artifacts.

It downloads the issuer PDF, locates the segment for each requested ticker,
recognizes the document's date dialect, derives the business day before each
ex-date against the US federal holiday calendar, and writes CSV and ICS files.

Use 'divcal help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Handle debug flag
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/divcal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newExtractCmd(app))
	rootCmd.AddCommand(newICSCmd(app))
	rootCmd.AddCommand(newFetchCmd(app))
	rootCmd.AddCommand(newHolidaysCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("divcal v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Output")
	output.Printf("  Directory:  %s\n", cfg.Output.Dir)
	output.Printf("  Full CSV:   %v\n", cfg.Output.FullCSV)
	output.Printf("  CSV splits: %s\n", FormatSelection(cfg.Output.Split))
	output.Printf("  ICS files:  %s\n", FormatSelection(cfg.Output.ICS))
	output.Println()

	output.Bold("Extraction")
	output.Printf("  Keep latest: %d\n", cfg.Extract.KeepLatest)
	output.Printf("  Parallel:    %d\n", cfg.Extract.Parallel)
	output.Println()

	output.Bold("Cache")
	output.Printf("  Directory: %s\n", cfg.Cache.Dir)
	output.Printf("  Timeout:   %s\n", cfg.Cache.Timeout)
	output.Println()

	output.Bold("Issuers")
	for name, issuer := range cfg.Issuers {
		output.Printf("  %-10s %s\n", name, issuer.Format)
	}
	if len(cfg.Overrides) > 0 {
		output.Println()
		output.Bold("Per-ticker overrides")
		for ticker, fields := range cfg.Overrides {
			output.Printf("  %-6s %v\n", ticker, fields)
		}
	}

	return nil
}
