package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconChanged   = "±" // File has rewritten includes
	IconUnchanged = " " // Nothing to rewrite (no icon to reduce noise)
	IconAccepted  = "✓" // Marked for writing
)
