package config

const (
	defaultOutputDir        = "~/fetchm/output"
	defaultLogDir           = "~/.local/share/fetchm/logs"
	defaultHistoryDB        = "~/.local/share/fetchm/history.db"
	defaultRegistryBaseURL  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	defaultRegistryTimeout  = 30
	defaultRequestDelayMS   = 350
	defaultMinCompleteness  = 90.0
	defaultMaxContamination = 5.0
	defaultDownloadBaseURL  = "https://ftp.ncbi.nlm.nih.gov/genomes/all"
	defaultDownloadTimeout  = 600
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		Registry: Registry{
			BaseURL:        defaultRegistryBaseURL,
			TimeoutSeconds: defaultRegistryTimeout,
			RequestDelayMS: defaultRequestDelayMS,
		},
		Quality: Quality{
			MinCompleteness:  defaultMinCompleteness,
			MaxContamination: defaultMaxContamination,
		},
		Download: Download{
			Enabled:        false,
			BaseURL:        defaultDownloadBaseURL,
			TimeoutSeconds: defaultDownloadTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
