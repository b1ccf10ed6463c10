package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Backing REST service that owns all donor and request records
	APIBaseURL string `envconfig:"API_BASE_URL"`

	// Admin session
	CookieName       string `envconfig:"SESSION_COOKIE_NAME" default:"bloodnet_admin"`
	SessionMaxAgeSec int    `envconfig:"SESSION_MAX_AGE_SEC" default:"28800"` // 8 hours

	// Cookie encryption keys (base64 encoded)
	// run `bloodnet keygen` to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}
