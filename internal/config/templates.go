package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# divcal configuration

[output]
# Directory artifacts are written to
dir = "."
# Write the full schedule CSV per ticker
full_csv = true

# Per-field CSV splits (two-column files, one per enabled field)
[output.split]
ex_date = false
ex_date_minus_1 = false
record_date = false
payable_date = false
declaration_date = false

# Per-field ICS calendars
[output.ics]
ex_date = false
ex_date_minus_1 = true
record_date = false
payable_date = false
declaration_date = false

[extract]
# Keep only the most recent N label-block distributions (0 keeps all)
keep_latest = 3
# Tickers extracted concurrently
parallel = 4

[calendar]
# Ad-hoc non-business dates appended to the US federal holiday set,
# e.g. market closures: ["2025-04-18"]
extra_holidays = []

[cache]
# Document cache directory (default: <config dir>/cache)
dir = ""
# Download timeout
timeout = "60s"

[logging]
# Log level: debug, info, warn, error
level = "info"
console = true
file = true

# Per-ticker field overrides for CSV splits. An explicit entry wins over
# the [output.split] defaults.
#
# [overrides]
# GAL = ["Ex Date -1"]
# SPY = ["Record Date", "Payable Date"]
[overrides]
`

const issuersTemplate = `# divcal issuer document registry
#
# format is one of: month-row, column-position, label-block.
# Set file to a local document to skip the download.

[spdr]
url = "https://www.ssga.com/library-content/products/fund-data/etfs/us/distribution/SPDR_Dividend_Distribution_Schedule.pdf"
format = "month-row"

[vanguard]
url = "https://investor.vanguard.com/content/dam/retail/publicsite/en/documents/taxes/DIVDAT_012025.pdf"
format = "column-position"

[ishares]
url = "https://www.ishares.com/us/literature/shareholder-letters/isharesandblackrocketfsdistributionschedule.pdf"
format = "label-block"
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return fmt.Errorf("config file not found, created template at %s", path)
}

func createTemplateIssuers(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "issuers.toml")
	if err := os.WriteFile(path, []byte(issuersTemplate), 0644); err != nil {
		return fmt.Errorf("writing issuers template: %w", err)
	}

	return fmt.Errorf("issuers file not found, created template at %s", path)
}
