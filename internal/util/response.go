package util

// Envelope is the free-form payload merged into every JSON response body.
type Envelope map[string]any
