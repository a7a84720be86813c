package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/config"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/emit"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/errors"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/extract"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/logging"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/models"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/source"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/pkg/utils"
)

// tickerResult is one ticker's extraction outcome.
type tickerResult struct {
	Ticker    string   `json:"ticker"`
	Records   int      `json:"records"`
	Artifacts []string `json:"artifacts,omitempty"`
	Error     string   `json:"error,omitempty"`

	err error
}

func newExtractCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [tickers...]",
		Short: "Extract distribution schedules and write CSV/ICS artifacts",
		Long: `Extract the distribution schedule for one or more tickers from an
issuer document and write the configured CSV and ICS artifacts.

Tickers are processed independently: one ticker failing does not disturb
the others. No partial artifact is ever written for a failed ticker.`,
		Example: `  divcal extract SPY BIL --issuer spdr
  divcal extract VOO --issuer vanguard --ics --split
  divcal extract SGOV --issuer ishares --keep 3 --out ./calendars`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			issuerName, _ := cmd.Flags().GetString("issuer")
			outDir, _ := cmd.Flags().GetString("out")
			refresh, _ := cmd.Flags().GetBool("refresh")
			parallel, _ := cmd.Flags().GetInt("parallel")
			keep, _ := cmd.Flags().GetInt("keep")
			writeCSV, _ := cmd.Flags().GetBool("csv")
			writeSplit, _ := cmd.Flags().GetBool("split")
			writeICS, _ := cmd.Flags().GetBool("ics")

			issuer, ok := app.Config.Issuer(issuerName)
			if !ok {
				output.Error("Unknown issuer %q. Check 'divcal config show'.", issuerName)
				return errors.ErrIssuerUnknown
			}
			format, _ := issuer.DocumentFormat()
			if outDir == "" {
				outDir = app.Config.Output.Dir
			}
			if parallel <= 0 {
				parallel = app.Config.Extract.Parallel
			}
			if !cmd.Flags().Changed("keep") {
				keep = app.Config.Extract.KeepLatest
			}

			logger := logging.WithIssuer(app.Logger, issuerName)
			lines, err := app.documentLines(ctx, issuerName, issuer, refresh, logger)
			if err != nil {
				output.Error("Loading document failed: %v", err)
				return err
			}

			tickers := make([]string, len(args))
			for i, t := range args {
				tickers[i] = strings.ToUpper(strings.TrimSpace(t))
			}

			// One worker per ticker. The assembler holds no mutable state
			// and the calendar is read-only, so sharing them is safe.
			asm := extract.NewAssembler(app.Calendar)
			asm.Keep = keep
			asm.Logger = logger

			results := make([]tickerResult, len(tickers))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(parallel)
			for i, ticker := range tickers {
				i, ticker := i, ticker
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						results[i] = tickerResult{Ticker: ticker, err: err, Error: err.Error()}
						return nil
					}
					res := app.extractOne(asm, lines, ticker, issuerName, format, outDir, writeCSV, writeSplit, writeICS)
					results[i] = res
					// Failures are collected, not propagated: other
					// tickers keep running.
					return nil
				})
			}
			g.Wait()

			return reportResults(output, results)
		},
	}

	cmd.Flags().String("issuer", "", "registered issuer document to extract from (required)")
	cmd.MarkFlagRequired("issuer")
	cmd.Flags().String("out", "", "output directory (default: output.dir from config)")
	cmd.Flags().Bool("refresh", false, "re-download the document even if cached")
	cmd.Flags().Int("parallel", 0, "tickers extracted concurrently (default from config)")
	cmd.Flags().Int("keep", extract.DefaultKeep, "keep only the most recent N label-block distributions (0 keeps all)")
	cmd.Flags().Bool("csv", true, "write the full schedule CSV")
	cmd.Flags().Bool("split", false, "write per-field CSV splits")
	cmd.Flags().Bool("ics", true, "write per-field ICS calendars")

	return cmd
}

// documentLines fetches (or reuses) the issuer document and flattens its
// pages into positioned lines shared read-only by all workers.
func (app *App) documentLines(ctx context.Context, name string, issuer config.IssuerConfig, refresh bool, logger zerolog.Logger) ([]models.RawLine, error) {
	path := issuer.File
	if path == "" {
		fetcher := source.NewFetcher(app.Config.Cache.Dir, app.Config.Cache.Timeout, logger)
		ext := filepath.Ext(issuer.URL)
		if ext == "" {
			ext = ".pdf"
		}
		var err error
		path, err = fetcher.Fetch(ctx, issuer.URL, name+ext, refresh)
		if err != nil {
			return nil, err
		}
	}

	var src source.Source
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		src = source.NewTextSource(path)
	} else {
		src = source.NewPDFSource(path)
	}
	pages, err := src.Pages(ctx)
	if err != nil {
		return nil, err
	}
	return source.Lines(pages), nil
}

// extractOne runs the full pipeline for a single ticker: assemble, then
// emit the selected artifacts. Any error aborts the ticker before the
// first artifact is written, so there is never partial output.
func (app *App) extractOne(asm *extract.Assembler, lines []models.RawLine, ticker, issuerName string, format models.DocumentFormat, outDir string, writeCSV, writeSplit, writeICS bool) tickerResult {
	logger := logging.WithTicker(logging.WithIssuer(app.Logger, issuerName), ticker)

	sched, err := asm.Assemble(lines, ticker, format)
	if err != nil {
		wrapped := errors.NewExtractError(ticker, issuerName, "assemble", err)
		logger.Error().Err(err).Msg("Extraction failed")
		return tickerResult{Ticker: ticker, err: wrapped, Error: wrapped.Error()}
	}
	sched.Issuer = issuerName
	logging.LogSchedule(logger, ticker, string(format), len(sched.Records))

	res := tickerResult{Ticker: ticker, Records: len(sched.Records)}
	base := filepath.Join(outDir, fmt.Sprintf("%s_%s_Schedule", ticker, issuerName))

	if writeCSV {
		path := base + ".csv"
		if err := emit.WriteScheduleCSV(sched, path); err != nil {
			wrapped := errors.NewExtractError(ticker, issuerName, "csv", err)
			return tickerResult{Ticker: ticker, err: wrapped, Error: wrapped.Error()}
		}
		logging.LogArtifact(logger, "csv", path, len(sched.Records))
		res.Artifacts = append(res.Artifacts, path)
	}

	if writeSplit {
		sel := app.Config.SplitSelectionFor(ticker)
		paths, err := emit.WriteSplitCSVs(sched, base, sel)
		if err != nil {
			wrapped := errors.NewExtractError(ticker, issuerName, "split", err)
			return tickerResult{Ticker: ticker, err: wrapped, Error: wrapped.Error()}
		}
		for _, p := range paths {
			logging.LogArtifact(logger, "split", p, len(sched.Records))
		}
		res.Artifacts = append(res.Artifacts, paths...)
	}

	if writeICS {
		writer := emit.NewICSWriter()
		for _, field := range app.Config.ICSSelectionFor(ticker).Fields() {
			path := base + "_" + emit.FileSafeField(field) + ".ics"
			count, err := writer.Write(sched, field, path)
			if err != nil {
				wrapped := errors.NewExtractError(ticker, issuerName, "ics", err)
				return tickerResult{Ticker: ticker, err: wrapped, Error: wrapped.Error()}
			}
			logging.LogArtifact(logger, "ics", path, count)
			res.Artifacts = append(res.Artifacts, path)
		}
	}

	return res
}

func reportResults(output *Output, results []tickerResult) error {
	if output.IsJSON() {
		output.JSON(results)
	} else {
		for _, res := range results {
			if res.err != nil {
				output.Error("✗ %s: %v", res.Ticker, res.err)
				continue
			}
			output.Success("✓ %s: %s, %s", res.Ticker,
				utils.Pluralize(res.Records, "record", "records"),
				utils.Pluralize(len(res.Artifacts), "artifact", "artifacts"))
			for _, a := range res.Artifacts {
				output.Printf("    %s\n", output.DimText(a))
			}
		}
	}

	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
		}
	}
	if failed == len(results) {
		return fmt.Errorf("all %d tickers failed", failed)
	}
	if failed > 0 {
		output.Warning("%s failed", utils.Pluralize(failed, "ticker", "tickers"))
	}
	return nil
}
