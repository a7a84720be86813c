package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/models"
)

func validConfig() *Config {
	return &Config{
		Extract: ExtractConfig{KeepLatest: 3, Parallel: 4},
		Issuers: map[string]IssuerConfig{
			"spdr": {URL: "https://example.com/schedule.pdf", Format: "month-row"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"negative keep", func(c *Config) { c.Extract.KeepLatest = -1 }, "keep_latest"},
		{"zero parallel", func(c *Config) { c.Extract.Parallel = 0 }, "parallel"},
		{"excessive parallel", func(c *Config) { c.Extract.Parallel = 64 }, "parallel"},
		{"bad issuer format", func(c *Config) {
			c.Issuers["spdr"] = IssuerConfig{URL: "https://example.com", Format: "tabular"}
		}, "unknown format"},
		{"issuer without source", func(c *Config) {
			c.Issuers["spdr"] = IssuerConfig{Format: "month-row"}
		}, "either url or file"},
		{"bad override field", func(c *Config) {
			c.Overrides = map[string][]string{"SPY": {"settlement_date"}}
		}, "unknown date field"},
		{"bad extra holiday", func(c *Config) {
			c.Calendar.ExtraHolidays = []string{"not-a-date"}
		}, "not a date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAcceptsUnderscoreFields(t *testing.T) {
	cfg := validConfig()
	cfg.Overrides = map[string][]string{"SPY": {"ex_date", "payable_date"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestSplitSelectionForOverrideWins(t *testing.T) {
	cfg := validConfig()
	cfg.Output.Split = models.FieldSelection{ExDate: true, RecordDate: true}
	cfg.Overrides = map[string][]string{"VOO": {"payable_date"}}

	voo := cfg.SplitSelectionFor("VOO")
	if !voo.PayableDate || voo.ExDate || voo.RecordDate {
		t.Errorf("override selection = %+v, want payable date only", voo)
	}

	spy := cfg.SplitSelectionFor("SPY")
	if !spy.ExDate || !spy.RecordDate || spy.PayableDate {
		t.Errorf("default selection = %+v", spy)
	}
}

func TestICSSelectionForOverrideWins(t *testing.T) {
	cfg := validConfig()
	cfg.Output.ICS = models.FieldSelection{ExDateMinusOne: true}
	cfg.Overrides = map[string][]string{"GAL": {"Ex Date -1", "Payable Date"}}

	gal := cfg.ICSSelectionFor("GAL")
	if !gal.ExDateMinusOne || !gal.PayableDate || gal.ExDate {
		t.Errorf("override selection = %+v, want ex-1 and payable", gal)
	}

	// The same override table governs both artifact kinds.
	split := cfg.SplitSelectionFor("GAL")
	if !split.ExDateMinusOne || !split.PayableDate {
		t.Errorf("split selection = %+v, want the override fields", split)
	}

	other := cfg.ICSSelectionFor("SPY")
	if !other.ExDateMinusOne || other.PayableDate {
		t.Errorf("default selection = %+v", other)
	}
}

func TestExtraHolidayDates(t *testing.T) {
	cfg := validConfig()
	cfg.Calendar.ExtraHolidays = []string{"2025-04-18", "6/19/2025"}

	got := cfg.ExtraHolidayDates()
	if len(got) != 2 {
		t.Fatalf("got %d dates, want 2", len(got))
	}
	if got[0].Compact() != "20250418" || got[1].Compact() != "20250619" {
		t.Errorf("dates = %v", got)
	}
}

// seedTemplates runs Load until the config and issuer templates exist.
// Each missing file is created on the run that first misses it, with an
// error telling the user where the template landed.
func seedTemplates(t *testing.T, dir string) {
	t.Helper()
	for _, name := range []string{"config.toml", "issuers.toml"} {
		_, err := Load(dir)
		if err == nil {
			t.Fatalf("load before %s template existed should fail", name)
		}
		if !strings.Contains(err.Error(), "created template") {
			t.Fatalf("err = %v, want template-creation notice", err)
		}
		if _, statErr := os.Stat(filepath.Join(dir, name)); statErr != nil {
			t.Fatalf("%s not created: %v", name, statErr)
		}
	}
}

func TestLoadTemplatesThenSucceed(t *testing.T) {
	dir := t.TempDir()
	seedTemplates(t, dir)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load after templates failed: %v", err)
	}
	if cfg.Extract.Parallel != 4 || cfg.Extract.KeepLatest != 3 {
		t.Errorf("defaults not applied: %+v", cfg.Extract)
	}
	if !cfg.Output.ICS.ExDateMinusOne {
		t.Error("ICS ex-1 default not applied")
	}
	if cfg.Cache.Dir != filepath.Join(dir, "cache") {
		t.Errorf("cache dir = %q", cfg.Cache.Dir)
	}
	if _, ok := cfg.Issuer("spdr"); !ok {
		t.Error("template issuers not loaded")
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	seedTemplates(t, dir)
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[extract]\nparallel = 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "parallel") {
		t.Errorf("err = %v, want parallel validation error", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	seedTemplates(t, dir)
	t.Setenv("DIVCAL_CACHE_DIR", "/tmp/divcal-cache")
	t.Setenv("DIVCAL_OUTPUT_DIR", "/tmp/divcal-out")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Dir != "/tmp/divcal-cache" {
		t.Errorf("cache dir = %q", cfg.Cache.Dir)
	}
	if cfg.Output.Dir != "/tmp/divcal-out" {
		t.Errorf("output dir = %q", cfg.Output.Dir)
	}
}
