// Package logging provides the structured logger used across the soroban
// trainer. Every entry is a zerolog JSON line tagged with the component that
// wrote it.
package logging
