// Package services holds the application services behind the HTTP handlers:
// analytics over the loaded dataset and process health reporting.
package services
