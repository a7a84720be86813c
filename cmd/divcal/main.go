// Command divcal extracts ETF dividend distribution schedules from issuer
// documents and generates CSV and ICS calendar artifacts.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/cli"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/config"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/logging"
)

func main() {
	configDir := configDirFromArgs(os.Args[1:])

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "divcal: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultLogConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Console = cfg.Logging.Console
	logCfg.File = cfg.Logging.File
	if configDir != "" {
		logCfg.FilePath = filepath.Join(configDir, "logs", "divcal.log")
	}
	logger := logging.NewLoggerWithConfig(logCfg)

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "divcal: %v\n", err)
		os.Exit(1)
	}
}

// configDirFromArgs pre-scans for the --config flag, which must be known
// before cobra runs because the config decides how commands are built.
func configDirFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if len(arg) > len("--config=") && arg[:len("--config=")] == "--config=" {
			return arg[len("--config="):]
		}
	}
	return ""
}
