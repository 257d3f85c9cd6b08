// Package module defines the feature contract used by portal composition.
package module

import "net/http"

// Mount describes where a module is served.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module is one independently mounted feature area.
type Module interface {
	ID() string
	Mount() (Mount, error)
}
