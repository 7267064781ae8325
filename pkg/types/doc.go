// Package types holds the small interfaces shared across prepenv packages.
package types
