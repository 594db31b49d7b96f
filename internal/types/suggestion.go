// Package types provides type definitions for structured data used throughout the keyword-scout system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SuggestionResult pairs an autocomplete candidate with its estimated search volume.
// The JSON field names are part of the report prompt and must stay stable.
type SuggestionResult struct {
	Keyword      string `json:"keyword"`
	SearchVolume int64  `json:"searchVolume"`
}
