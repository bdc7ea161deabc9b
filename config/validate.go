package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"slices"

	"github.com/phanxgames/trackswipe"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWebhook(); err != nil {
		return err
	}
	if err := c.validateSwipe(); err != nil {
		return err
	}
	if err := c.validatePlayer(); err != nil {
		return err
	}
	if err := c.validateWindow(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateWebhook() error {
	if c.Webhook.TimeoutSeconds < 0 {
		return errors.New("webhook.timeout_seconds must be positive")
	}
	if c.Webhook.URL == "" {
		return nil
	}
	u, err := url.Parse(c.Webhook.URL)
	if err != nil {
		return fmt.Errorf("webhook.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("webhook.url must be http or https, got %q", c.Webhook.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("webhook.url has no host: %q", c.Webhook.URL)
	}
	return nil
}

func (c *Config) validateSwipe() error {
	if !(c.Swipe.Threshold > 0) || math.IsInf(c.Swipe.Threshold, 0) {
		return errors.New("swipe.threshold must be a positive number")
	}
	if _, err := trackswipe.ParseZonePolicy(c.Swipe.Policy); err != nil {
		return fmt.Errorf("swipe.policy: %w", err)
	}
	return nil
}

func (c *Config) validatePlayer() error {
	if !(c.Player.Volume >= 0 && c.Player.Volume <= 100) {
		return errors.New("player.volume must be between 0 and 100")
	}
	return nil
}

func (c *Config) validateWindow() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return errors.New("window.width and window.height must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Logging.Level) {
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
