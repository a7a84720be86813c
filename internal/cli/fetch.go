package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/errors"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/logging"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/source"
)

func newFetchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download and cache an issuer document",
		Long: `Download the registered document of an issuer into the cache directory
without extracting anything. A cached document is reused unless --refresh
is given.`,
		Example: `  divcal fetch --issuer spdr
  divcal fetch --issuer vanguard --refresh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			issuerName, _ := cmd.Flags().GetString("issuer")
			refresh, _ := cmd.Flags().GetBool("refresh")

			issuer, ok := app.Config.Issuer(issuerName)
			if !ok {
				output.Error("Unknown issuer %q. Check 'divcal config show'.", issuerName)
				return errors.ErrIssuerUnknown
			}
			if issuer.File != "" {
				output.Info("Issuer %s uses a local file: %s", issuerName, issuer.File)
				return nil
			}

			logger := logging.WithIssuer(app.Logger, issuerName)
			fetcher := source.NewFetcher(app.Config.Cache.Dir, app.Config.Cache.Timeout, logger)
			ext := filepath.Ext(issuer.URL)
			if ext == "" {
				ext = ".pdf"
			}
			path, err := fetcher.Fetch(ctx, issuer.URL, issuerName+ext, refresh)
			if err != nil {
				output.Error("Download failed: %v", err)
				return err
			}

			if output.IsJSON() {
				output.JSON(map[string]string{"issuer": issuerName, "path": path})
			} else {
				output.Success("✓ %s", path)
			}
			return nil
		},
	}

	cmd.Flags().String("issuer", "", "registered issuer document to download (required)")
	cmd.MarkFlagRequired("issuer")
	cmd.Flags().Bool("refresh", false, "re-download even if cached")

	return cmd
}
