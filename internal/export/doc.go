// Package export writes polynomial plots as SVG and stored runs as JSON.
package export
