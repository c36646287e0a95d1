// Package exporter renders sales records and analytics aggregates as CSV
// and xlsx downloads.
package exporter
