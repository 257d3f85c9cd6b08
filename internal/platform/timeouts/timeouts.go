// Package timeouts holds the durations shared by the portal server and its
// API client.
package timeouts

import "time"

// APIRequest caps a single call from the portal to the CRM API.
const APIRequest = 10 * time.Second

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server drains in-flight requests.
const Shutdown = 5 * time.Second

// TelemetryShutdown limits how long pending spans are flushed on exit.
const TelemetryShutdown = 5 * time.Second
