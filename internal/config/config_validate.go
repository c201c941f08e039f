// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package config

import (
	"fmt"
	"net/url"

	"github.com/tomtom215/venuerec/internal/validation"
)

// Validate checks that required configuration is present and valid.
// Field rules live in the struct tags; the checks below span fields.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateBackends(); err != nil {
		return err
	}

	return c.validateMetrics()
}

// validateBackends rejects a backend listed twice, which would overwrite
// one set of artifacts with the other.
func (c *Config) validateBackends() error {
	seen := make(map[string]bool, len(c.Recommend.Backends))
	for _, b := range c.Recommend.Backends {
		if seen[b] {
			return fmt.Errorf("RECOMMEND_BACKENDS lists %q more than once", b)
		}
		seen[b] = true
	}
	return nil
}

// validateMetrics validates the Pushgateway URL when pushing is enabled.
func (c *Config) validateMetrics() error {
	if c.Metrics.PushgatewayURL == "" {
		return nil
	}
	u, err := url.Parse(c.Metrics.PushgatewayURL)
	if err != nil {
		return fmt.Errorf("METRICS_PUSHGATEWAY_URL failed to parse URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("METRICS_PUSHGATEWAY_URL scheme must be http or https, got: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("METRICS_PUSHGATEWAY_URL host is required")
	}
	return nil
}
