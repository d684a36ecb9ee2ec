package cfg

type Cfg struct {
	// Dataset configuration
	DataFile    string
	SourcesFile string

	// Scrape configuration
	RequestDelay int
	HTTPTimeout  int

	// Server configuration
	Port string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
