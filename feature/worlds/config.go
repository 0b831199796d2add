package worlds

// Config holds configuration for the world catalog.
type Config struct {
	// Region is the data center whose worlds are ingested.
	Region string `mapstructure:"region" default:"Light"`
}
