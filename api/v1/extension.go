package v1

import (
	"time"

	"github.com/tupyy/jobsystem/internal/models"
	"github.com/tupyy/jobsystem/pkg/scheduler"
)

// ToModel converts the request into a workload description. The kind is
// validated by the workload builder.
func (r WorkloadRequest) ToModel() models.WorkloadSpec {
	return models.WorkloadSpec{
		Kind:      models.WorkloadKind(r.Kind),
		Jobs:      r.Jobs,
		Fanout:    r.Fanout,
		Cost:      time.Duration(r.CostMs) * time.Millisecond,
		FailEvery: r.FailEvery,
	}
}

// NewWorkloadRunFromModel converts a models.WorkloadRun to an API WorkloadRun.
func NewWorkloadRunFromModel(run models.WorkloadRun) WorkloadRun {
	apiRun := WorkloadRun{
		Id:         run.ID,
		Kind:       string(run.Kind),
		Jobs:       run.Jobs,
		Workers:    run.Workers,
		Completed:  run.Completed,
		Panicked:   run.Panicked,
		Cancelled:  run.Cancelled,
		DurationMs: run.Duration.Milliseconds(),
		StartedAt:  run.StartedAt,
	}

	if run.Error != "" {
		apiRun.Error = &run.Error
	}

	return apiRun
}

func NewSchedulerStatsFromModel(stats scheduler.Stats) SchedulerStats {
	workers := make([]WorkerStats, 0, len(stats.Workers))
	for _, w := range stats.Workers {
		workers = append(workers, WorkerStats{
			Id:         w.ID,
			State:      w.State.String(),
			QueueDepth: w.QueueDepth,
			Executed:   w.Executed,
			Stolen:     w.Stolen,
			Panicked:   w.Panicked,
		})
	}

	return SchedulerStats{
		Workers:   workers,
		Queued:    stats.Queued,
		Submitted: stats.Submitted,
		Completed: stats.Completed,
		Panicked:  stats.Panicked,
		Cancelled: stats.Cancelled,
	}
}
