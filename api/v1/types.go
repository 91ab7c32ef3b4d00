package v1

import "time"

// WorkloadRequest describes a workload to run.
type WorkloadRequest struct {
	Kind      string `json:"kind"`
	Jobs      int    `json:"jobs"`
	Fanout    int    `json:"fanout,omitempty"`
	CostMs    int64  `json:"costMs,omitempty"`
	FailEvery int    `json:"failEvery,omitempty"`
}

type WorkloadRun struct {
	Id         string    `json:"id"`
	Kind       string    `json:"kind"`
	Jobs       int       `json:"jobs"`
	Workers    int       `json:"workers"`
	Completed  int       `json:"completed"`
	Panicked   int       `json:"panicked"`
	Cancelled  int       `json:"cancelled"`
	DurationMs int64     `json:"durationMs"`
	Error      *string   `json:"error,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
}

type WorkloadListResponse struct {
	Runs   []WorkloadRun `json:"runs"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

type ListWorkloadsParams struct {
	Kind   *[]string `form:"kind,omitempty" json:"kind,omitempty"`
	Limit  *int      `form:"limit,omitempty" json:"limit,omitempty"`
	Offset *int      `form:"offset,omitempty" json:"offset,omitempty"`
}

type WorkerStats struct {
	Id         int    `json:"id"`
	State      string `json:"state"`
	QueueDepth int    `json:"queueDepth"`
	Executed   uint64 `json:"executed"`
	Stolen     uint64 `json:"stolen"`
	Panicked   uint64 `json:"panicked"`
}

type SchedulerStats struct {
	Workers   []WorkerStats `json:"workers"`
	Queued    int           `json:"queued"`
	Submitted uint64        `json:"submitted"`
	Completed uint64        `json:"completed"`
	Panicked  uint64        `json:"panicked"`
	Cancelled uint64        `json:"cancelled"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
