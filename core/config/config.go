package config

import (
	"reflect"
	"strings"

	"github.com/samsimpson1/stonks/core/database"
	"github.com/samsimpson1/stonks/core/feed"
	"github.com/samsimpson1/stonks/core/logger"
	"github.com/samsimpson1/stonks/core/server"
	"github.com/samsimpson1/stonks/core/storage"
	"github.com/samsimpson1/stonks/core/universalis"
	"github.com/samsimpson1/stonks/core/xivapi"
	"github.com/samsimpson1/stonks/feature/names"
	"github.com/samsimpson1/stonks/feature/worlds"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the record store.
	Database database.Config `mapstructure:"database"`
	// Feed holds configuration for the websocket feed.
	Feed feed.Config `mapstructure:"feed"`
	// Universalis holds configuration for the world directory API.
	Universalis universalis.Config `mapstructure:"universalis"`
	// XIVAPI holds configuration for the item name lookup.
	XIVAPI xivapi.Config `mapstructure:"xivapi"`
	// Names holds configuration for the name resolver cache.
	Names names.Config `mapstructure:"names"`
	// Worlds selects the region to ingest.
	Worlds worlds.Config `mapstructure:"worlds"`
	// Server holds configuration for the status HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for snapshot object storage.
	Storage storage.Config `mapstructure:"storage"`
}

// aliases maps config keys to the short environment names deployments already use.
var aliases = map[string]string{
	"database.path": "DB_PATH",
	"worlds.region": "DC",
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Missing .env is normal in production.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. FEED_URL -> feed.url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, alias := range aliases {
		canonical := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, canonical, alias); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers the 'default' tag of every
// 'mapstructure' key with Viper.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Registering empty defaults too lets AutomaticEnv see the key.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
