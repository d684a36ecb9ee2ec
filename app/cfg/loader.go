package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Dataset configuration
	DataFile    string `long:"data-file" env:"DATA_FILE" default:"./data/catalog.json" description:"Path to the persisted dataset document"`
	SourcesFile string `long:"sources-file" env:"SOURCES_FILE" default:"./sources.yml" description:"Path to the source configuration file"`

	// Scrape configuration
	RequestDelay int `long:"request-delay" env:"REQUEST_DELAY" default:"1000" description:"Politeness delay between upstream requests in milliseconds"`
	HTTPTimeout  int `long:"http-timeout" env:"HTTP_TIMEOUT" default:"15" description:"HTTP timeout for upstream fetches in seconds"`

	// Server configuration
	Port string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"keebindex/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DataFile:     raw.DataFile,
		SourcesFile:  raw.SourcesFile,
		RequestDelay: raw.RequestDelay,
		HTTPTimeout:  raw.HTTPTimeout,
		Port:         raw.Port,
		UserAgent:    raw.UserAgent,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
