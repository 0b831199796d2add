package xivapi

// Config holds configuration for the XIVAPI item sheet lookup.
type Config struct {
	// BaseURL is the API root.
	BaseURL string `mapstructure:"base_url" default:"https://v2.xivapi.com"`
	// Language selects the localized item name.
	Language string `mapstructure:"language" default:"en"`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
