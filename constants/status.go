package constants

// JobStatus is the canonical status for rows in extraction_job.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued    JobStatus = "QUEUED"    // accepted, not started
	JobStatusRunning   JobStatus = "RUNNING"   // in progress
	JobStatusSucceeded JobStatus = "SUCCEEDED" // every document processed
	JobStatusFailed    JobStatus = "FAILED"    // terminal failure
)
