package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tupyy/jobsystem/internal/models"
)

type runFlags struct {
	kind      string
	jobs      int
	fanout    int
	cost      time.Duration
	failEvery int
}

func newRunCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one workload and print its summary",
		Long: `Run builds a synthetic workload, runs it on a job system and prints a
summary. The command fails when any job of the workload failed.

Examples:
  jobsys run --kind compute --jobs 10000
  jobsys run --kind forkjoin --jobs 64 --fanout 32 --cost 1ms --workers 4
  jobsys run --kind assets --jobs 500 --fail-every 3
  jobsys run --kind faulty --jobs 100 --fail-every 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWorkload(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.kind, "kind", string(models.WorkloadCompute), "Workload kind (compute, forkjoin, assets, faulty)")
	cmd.Flags().IntVar(&f.jobs, "jobs", 1000, "Number of jobs")
	cmd.Flags().IntVar(&f.fanout, "fanout", 8, "Children per fork-join parent")
	cmd.Flags().DurationVar(&f.cost, "cost", 0, "Simulated duration of one job")
	cmd.Flags().IntVar(&f.failEvery, "fail-every", 0, "Fail every n-th job (faulty) or load attempt (assets)")
	registerSchedulerFlags(cmd)

	return cmd
}

func runWorkload(cmd *cobra.Command, f runFlags) error {
	kind, err := models.ParseWorkloadKind(f.kind)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	run, err := a.workloads.Run(ctx, models.WorkloadSpec{
		Kind:      kind,
		Jobs:      f.jobs,
		Fanout:    f.fanout,
		Cost:      f.cost,
		FailEvery: f.failEvery,
	})
	closeErr := a.close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return closeErr
	}

	printRun(cmd.OutOrStdout(), run)

	if !run.Succeeded() {
		return fmt.Errorf("workload %s failed", run.ID)
	}
	return nil
}

func printRun(w io.Writer, run *models.WorkloadRun) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	status := green("succeeded")
	if !run.Succeeded() {
		status = red("failed")
	}

	fmt.Fprintf(w, "%s %s\n", bold("Run:"), run.ID)
	fmt.Fprintf(w, "  Kind:      %s\n", run.Kind)
	fmt.Fprintf(w, "  Status:    %s\n", status)
	fmt.Fprintf(w, "  Workers:   %d\n", run.Workers)
	fmt.Fprintf(w, "  Jobs:      %d\n", run.Jobs)
	fmt.Fprintf(w, "  Completed: %s\n", green(run.Completed))
	if run.Panicked > 0 {
		fmt.Fprintf(w, "  Panicked:  %s\n", red(run.Panicked))
	}
	if run.Cancelled > 0 {
		fmt.Fprintf(w, "  Cancelled: %s\n", yellow(run.Cancelled))
	}
	fmt.Fprintf(w, "  Duration:  %s\n", run.Duration.Round(time.Microsecond))
	if run.Error != "" {
		fmt.Fprintf(w, "  Error:     %s\n", red(run.Error))
	}
}
