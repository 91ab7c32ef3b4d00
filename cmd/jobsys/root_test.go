package main

import (
	"bytes"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tupyy/jobsystem/internal/models"
)

func TestJobsys(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Jobsys Suite")
}

var _ = Describe("newLogger", func() {
	DescribeTable("should build a logger",
		func(format, level string) {
			logger, err := newLogger(format, level)
			Expect(err).NotTo(HaveOccurred())
			Expect(logger).NotTo(BeNil())
		},
		Entry("console", "console", "info"),
		Entry("json", "json", "debug"),
	)

	It("should reject an unknown format", func() {
		_, err := newLogger("xml", "info")
		Expect(err).To(HaveOccurred())
	})

	It("should reject an unknown level", func() {
		_, err := newLogger("console", "loud")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("printRun", func() {
	It("should print the failure of a run", func() {
		var buf bytes.Buffer
		printRun(&buf, &models.WorkloadRun{
			ID:        "run-1",
			Kind:      models.WorkloadFaulty,
			Jobs:      10,
			Workers:   2,
			Completed: 9,
			Panicked:  1,
			Duration:  time.Millisecond,
			Error:     "1 of 10 jobs failed",
		})

		out := buf.String()
		Expect(out).To(ContainSubstring("run-1"))
		Expect(out).To(ContainSubstring("failed"))
		Expect(out).To(ContainSubstring("Panicked"))
		Expect(out).NotTo(ContainSubstring("Cancelled"))
	})
})

var _ = Describe("version", func() {
	It("should print the version", func() {
		var buf bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"version"})

		Expect(cmd.Execute()).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("jobsys dev"))
	})
})

var _ = Describe("run", func() {
	execute := func(args ...string) (string, error) {
		var buf bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs(append([]string{"run", "--workers", "2"}, args...))
		err := cmd.Execute()
		return buf.String(), err
	}

	It("should run a workload and print its summary", func() {
		out, err := execute("--kind", "forkjoin", "--jobs", "8", "--fanout", "4")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("succeeded"))
		Expect(out).To(ContainSubstring("forkjoin"))
	})

	It("should fail when a job fails", func() {
		out, err := execute("--kind", "faulty", "--jobs", "4", "--fail-every", "2")

		Expect(err).To(HaveOccurred())
		Expect(out).To(ContainSubstring("2 of 4 jobs failed"))
	})

	It("should reject an unknown kind", func() {
		_, err := execute("--kind", "render")

		Expect(err).To(HaveOccurred())
	})
})
