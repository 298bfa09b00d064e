package model

// IngestEnvelope carries one raw log line with source metadata.
// It is the transport contract between input plugins and record extraction.
type IngestEnvelope struct {
	Source string
	Line   string
}
