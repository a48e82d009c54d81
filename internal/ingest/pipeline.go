package ingest

import "context"

// Pipeline defines the common interface for data ingestion pipelines
type Pipeline interface {
	// Run executes the pipeline with the given context
	Run(ctx context.Context) error

	// Stop cancels a running pipeline
	Stop()
}

// Summary counts what a pipeline did with its input.
type Summary struct {
	Collection string `json:"collection"`
	Read       int    `json:"read"`
	Rejected   int    `json:"rejected"`
	// Dropped records passed normalization but had an empty key after sanitizing.
	Dropped int `json:"dropped"`
	Written int `json:"written"`
}

// Job is a pipeline that reports a Summary once it has run.
type Job interface {
	Pipeline
	Summary() Summary
}
