package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeStore(); err != nil {
		return err
	}
	c.normalizeWebhook()
	c.normalizeSwipe()
	c.normalizeWindow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeStore() error {
	if strings.TrimSpace(c.Store.Path) == "" {
		c.Store.Path = defaultStorePath
	}
	var err error
	if c.Store.Path, err = expandPath(strings.TrimSpace(c.Store.Path)); err != nil {
		return fmt.Errorf("store.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeWebhook() {
	c.Webhook.URL = strings.TrimSpace(c.Webhook.URL)
	if c.Webhook.TimeoutSeconds == 0 {
		c.Webhook.TimeoutSeconds = defaultWebhookTimeout
	}
}

func (c *Config) normalizeSwipe() {
	c.Swipe.Policy = strings.ToLower(strings.TrimSpace(c.Swipe.Policy))
	if c.Swipe.Policy == "" {
		c.Swipe.Policy = defaultSwipePolicy
	}
	if c.Swipe.Threshold == 0 {
		c.Swipe.Threshold = defaultSwipeThreshold
	}
}

func (c *Config) normalizeWindow() {
	if c.Window.Width == 0 {
		c.Window.Width = defaultWindowWidth
	}
	if c.Window.Height == 0 {
		c.Window.Height = defaultWindowHeight
	}
	if strings.TrimSpace(c.Window.Title) == "" {
		c.Window.Title = defaultWindowTitle
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
