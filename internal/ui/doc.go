// Package ui holds the color themes shared by the line-mode output and the
// drill dashboard. It honours --no-color and the NO_COLOR convention.
package ui
