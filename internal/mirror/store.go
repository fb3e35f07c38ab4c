// Package mirror keeps a client-resident copy of the server's job and
// application collections. The store is the single rendering source: it is
// updated only from canonical server responses, never from locally
// fabricated records, and re-derives the displayed aggregates on every
// change.
package mirror

import (
	"context"
	"fmt"
	"sync"

	"github.com/farmlink/farmlink-api/internal/dto"
	"github.com/farmlink/farmlink-api/internal/stats"
)

// View identifies a renderable screen. Dispatch goes through this stable
// identifier, never through display text.
type View string

const (
	ViewOverview     View = "overview"
	ViewJobs         View = "jobs"
	ViewApplications View = "applications"
)

// Snapshot is an immutable copy of the mirrored state plus the aggregates
// derived from it.
type Snapshot struct {
	Jobs         []dto.JobDTO
	Applications []dto.ApplicationDTO

	ActiveJobs        int
	CompletedJobs     int
	TotalApplications int
}

// RenderFunc renders one view from a snapshot.
type RenderFunc func(Snapshot)

// Store holds the last-fetched collections behind a mutex with an
// update-and-notify contract.
type Store struct {
	client *Client

	// poster stores additionally mirror the applications against the
	// caller's jobs; worker stores only see the public job list
	asPoster bool

	mu           sync.Mutex
	jobs         []dto.JobDTO
	applications []dto.ApplicationDTO
	views        map[View]RenderFunc
	listeners    []func(Snapshot)
}

// NewStore creates a store bound to the given API client.
func NewStore(client *Client, asPoster bool) *Store {
	return &Store{
		client:   client,
		asPoster: asPoster,
		views:    make(map[View]RenderFunc),
	}
}

// RegisterView maps a stable view identifier to its render function.
func (s *Store) RegisterView(v View, render RenderFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views[v] = render
}

// RenderView renders the named view from the current snapshot.
func (s *Store) RenderView(v View) error {
	s.mu.Lock()
	render, ok := s.views[v]
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("no view registered for %q", v)
	}
	render(snap)
	return nil
}

// Subscribe registers a listener invoked with a fresh snapshot after every
// state change.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Refresh replaces the mirrored state wholesale from a full fetch. There is
// no partial sync.
func (s *Store) Refresh(ctx context.Context) error {
	jobs, err := s.client.ListJobs(ctx)
	if err != nil {
		return err
	}

	var apps []dto.ApplicationDTO
	if s.asPoster {
		apps, err = s.client.ListApplications(ctx)
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.jobs = jobs
	s.applications = apps
	s.mu.Unlock()

	s.notify()
	return nil
}

// CreateJob publishes a job and prepends the server's canonical record to
// the mirrored list.
func (s *Store) CreateJob(ctx context.Context, params CreateJobParams) (dto.JobDTO, error) {
	job, err := s.client.CreateJob(ctx, params)
	if err != nil {
		return dto.JobDTO{}, err
	}

	s.mu.Lock()
	s.jobs = append([]dto.JobDTO{job}, s.jobs...)
	s.mu.Unlock()

	s.notify()
	return job, nil
}

// DeleteJob removes a job and drops it, with its applications, from the
// mirrored state once the server confirms.
func (s *Store) DeleteJob(ctx context.Context, jobID string) error {
	if err := s.client.DeleteJob(ctx, jobID); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.jobs[:0]
	for _, job := range s.jobs {
		if job.ID != jobID {
			kept = append(kept, job)
		}
	}
	s.jobs = kept

	keptApps := s.applications[:0]
	for _, app := range s.applications {
		if app.JobID != jobID {
			keptApps = append(keptApps, app)
		}
	}
	s.applications = keptApps
	s.mu.Unlock()

	s.notify()
	return nil
}

// Apply submits an application and re-fetches the job list so the mirrored
// application counts come from the server, not from local arithmetic.
func (s *Store) Apply(ctx context.Context, jobID string) error {
	if err := s.client.Apply(ctx, jobID); err != nil {
		return err
	}

	jobs, err := s.client.ListJobs(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.jobs = jobs
	s.mu.Unlock()

	s.notify()
	return nil
}

// UpdateApplicationStatus applies a decision and patches the mirrored copy
// with the canonical updated record.
func (s *Store) UpdateApplicationStatus(ctx context.Context, appID, status string) error {
	updated, err := s.client.UpdateApplicationStatus(ctx, appID, status)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.applications {
		if s.applications[i].ID == updated.ID {
			s.applications[i] = updated
			break
		}
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// Snapshot returns a copy of the current state with derived aggregates.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	jobs := make([]dto.JobDTO, len(s.jobs))
	copy(jobs, s.jobs)
	apps := make([]dto.ApplicationDTO, len(s.applications))
	copy(apps, s.applications)

	return Snapshot{
		Jobs:              jobs,
		Applications:      apps,
		ActiveJobs:        stats.ActiveJobs(jobs),
		CompletedJobs:     stats.CompletedJobs(jobs),
		TotalApplications: stats.TotalApplications(apps),
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	listeners := make([]func(Snapshot), len(s.listeners))
	copy(listeners, s.listeners)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}
