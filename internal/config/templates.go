package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Fund Reporter Configuration

[report]
# Column width for wrapped reasoning text in console tables
reasoning_width = 60
# Override the analyst display order (empty = built-in order)
# analyst_order = ["Benjamin Graham", "Warren Buffett"]

[export]
# Directory for generated workbooks and CSV files
output_dir = "."
# SQLite database recording past exports (empty = <config dir>/history.db)
history_db = ""

[ui]
# Enable colored output
color_enabled = true

[prices]
# Price-history upstream API
base_url = "https://api.financialdatasets.ai"
# API key (or set FINANCIAL_DATASETS_API_KEY)
api_key = ""

[server]
# Listen address for the price-history passthrough
addr = ":8080"

[logging]
# Log level: debug, info, warn, error
level = "info"
console = true
file = true
`

// createTemplateConfig writes a template config file to the config directory.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0600)
}
