package config

import (
	"os"
	"strings"
)

// DemoEndpointsEnabled gates the simulated-purchase endpoint.
// The storefront demo must be explicitly switched on outside of local dev.
//
// Set via env:
// - DEMO_ENDPOINTS_ENABLED=true
func DemoEndpointsEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("DEMO_ENDPOINTS_ENABLED")))
	if v == "" {
		// default on: this is a demo/pilot deployment
		return true
	}
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// EventPublishEnabled turns on the Pub/Sub side channel for audit events.
// When off, events stay in MySQL only and the dispatcher never claims rows.
//
// Set via env:
// - EVENT_PUBLISH_ENABLED=true
func EventPublishEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("EVENT_PUBLISH_ENABLED")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
