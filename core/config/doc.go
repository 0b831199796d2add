// Package config loads the service configuration.
//
// Values come from a .env file (if present) and environment variables through Viper.
// Every setting has a default declared with a `default` struct tag next to its
// `mapstructure` key, and nested keys map to upper-case names joined with
// underscores (feed.reconnect_delay_seconds -> FEED_RECONNECT_DELAY_SECONDS).
//
// # Configuration Structure
//
//   - Log: level and format
//   - Database: driver and SQLite path or MySQL connection details
//   - Feed: websocket URL, timeouts and reconnect delay
//   - Universalis / XIVAPI: upstream API roots and timeouts
//   - Names: resolver cache TTL and size
//   - Worlds: the region (data center) to ingest
//   - Server: status server switch and port
//   - Storage: S3/MinIO snapshot bucket
//
// DB_PATH and DC are accepted as aliases of DATABASE_PATH and WORLDS_REGION.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Worlds.Region)
package config
