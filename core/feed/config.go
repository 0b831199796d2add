package feed

// Config holds configuration for the market feed connection.
type Config struct {
	// URL is the websocket endpoint of the feed.
	URL string `mapstructure:"url" default:"wss://universalis.app/api/ws"`
	// HandshakeTimeoutSeconds bounds the websocket opening handshake.
	HandshakeTimeoutSeconds int `mapstructure:"handshake_timeout_seconds" default:"30"`
	// ReadTimeoutSeconds closes a connection that delivered nothing for this long (0 disables).
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"0"`
	// ReconnectDelaySeconds is the pause before reconnecting after a transport error (0 disables reconnects).
	ReconnectDelaySeconds int `mapstructure:"reconnect_delay_seconds" default:"5"`
}
