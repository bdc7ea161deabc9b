package config

const (
	defaultStorePath      = "~/.local/share/trackswipe/tracks.db"
	defaultWebhookTimeout = 10
	defaultSwipeThreshold = 100.0
	defaultSwipePolicy    = "above-control"
	defaultVolume         = 70.0
	defaultWindowWidth    = 480
	defaultWindowHeight   = 800
	defaultWindowTitle    = "Track Review"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Store: Store{
			Path: defaultStorePath,
		},
		Webhook: Webhook{
			TimeoutSeconds: defaultWebhookTimeout,
		},
		Swipe: Swipe{
			Threshold: defaultSwipeThreshold,
			Policy:    defaultSwipePolicy,
		},
		Player: Player{
			Volume: defaultVolume,
		},
		Window: Window{
			Width:  defaultWindowWidth,
			Height: defaultWindowHeight,
			Title:  defaultWindowTitle,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
