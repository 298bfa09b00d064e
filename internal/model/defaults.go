package model

// Shared defaults used by the store and the server binary.
const (
	DefaultLogBuffer  = 1000
	DefaultQueryLimit = 100
	MaxGroupSamples   = 10
)
