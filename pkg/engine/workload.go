package engine

import (
	"golang.org/x/sync/errgroup"
)

// Workload is one set of queries to run against a freshly constructed
// Database: Setup runs once (typically CREATE TABLE/INSERT), then Queries
// runs in sequence, counted into the returned WorkloadReport.
type Workload struct {
	Setup   []string
	Queries []string
}

// WorkloadReport summarizes one Database instance's run of a Workload.
type WorkloadReport struct {
	Succeeded int
	Failed    int
}

// RunConcurrentWorkloads runs n independent Database instances concurrently,
// each running its own copy of w start to finish, via errgroup. No Catalog
// is shared between instances — each Database is itself single-threaded,
// per the engine's concurrency model (§5); this only exercises running
// several single-threaded engines in one process, the deployment shape the
// teacher's own benchmarks package assumes.
func RunConcurrentWorkloads(n int, w Workload, cfg Config) ([]WorkloadReport, error) {
	reports := make([]WorkloadReport, n)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			db := New(cfg)
			for _, q := range w.Setup {
				if _, err := db.Execute(q); err != nil {
					return err
				}
			}

			var report WorkloadReport
			for _, q := range w.Queries {
				if _, err := db.Execute(q); err != nil {
					report.Failed++
					continue
				}
				report.Succeeded++
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
