// Package http holds the chi HTTP handlers of the dashboard API.
package http
