// Package app wires configuration, services, middleware and routes into the
// dashboard server and owns its lifecycle.
package app
