// Package source switches between log roots and loads files for display.
package source
