package cli

import "github.com/chatprobe/backend/internal/infrastructure/config"

// Flags holds command-line flags
type Flags struct {
	DataPath   string
	ReportPath string
	Provider   string
	Model      string
	Verbose    bool
}

// Apply overrides config values with flags that were set.
func (f *Flags) Apply(cfg *config.Config) {
	if f.Provider != "" {
		cfg.LLMProvider = f.Provider
	}
	if f.Model != "" {
		cfg.LLMModel = f.Model
	}
	if f.Verbose {
		cfg.LogLevel = "debug"
	}
}
