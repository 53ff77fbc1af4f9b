package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/transcript-genie/internal/assembler"
	"github.com/nguyentantai21042004/transcript-genie/internal/dialogue"
)

type jobStatus string

const (
	statusRunning jobStatus = "running"
	statusDone    jobStatus = "done"
	statusFailed  jobStatus = "failed"
)

// job tracks one conversation-audio assembly from script to exported track.
type job struct {
	ID        string          `json:"id"`
	Status    jobStatus       `json:"status"`
	Error     string          `json:"error,omitempty"`
	Duration  float64         `json:"duration_sec,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Script    dialogue.Script `json:"-"`
	AudioPath string          `json:"-"`
}

type jobStore struct {
	mu   sync.RWMutex
	jobs map[string]*job
}

func newJobStore() *jobStore {
	return &jobStore{jobs: make(map[string]*job)}
}

func (s *jobStore) create(script dialogue.Script) *job {
	j := &job{
		ID:        uuid.NewString(),
		Status:    statusRunning,
		CreatedAt: time.Now(),
		Script:    script,
	}
	s.mu.Lock()
	s.jobs[j.ID] = j
	s.mu.Unlock()
	return j
}

// get returns a snapshot of the job. The assembly goroutine keeps mutating
// the stored struct under the lock, so handlers only ever see a copy.
func (s *jobStore) get(id string) (job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return job{}, false
	}
	return *j, true
}

func (s *jobStore) complete(id string, result *assembler.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[id]; ok {
		j.Status = statusDone
		j.AudioPath = result.Path
		j.Duration = result.Timeline.TotalDuration().Seconds()
	}
}

func (s *jobStore) fail(id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[id]; ok {
		j.Status = statusFailed
		j.Error = err.Error()
	}
}

// startAssembly runs the audio pipeline for a fresh job. The job outlives
// the HTTP request that created it, so it runs on the server's base context
// and is cancelled only by shutdown.
func (s *Server) startAssembly(script dialogue.Script) *job {
	j := s.jobs.create(script)

	go func() {
		ctx := s.baseCtx
		result, err := s.assembler.Assemble(ctx, script, func(stage string, done, total int) {
			s.hub.publish(j.ID, progressEvent{Stage: stage, Done: done, Total: total})
		})
		if err != nil {
			s.logger.Error(ctx, "Job %s failed: %v", j.ID, err)
			s.jobs.fail(j.ID, err)
			s.hub.publish(j.ID, progressEvent{Stage: "failed", Error: err.Error()})
			return
		}

		s.jobs.complete(j.ID, result)
		s.hub.publish(j.ID, progressEvent{Stage: "done"})
		s.logger.Info(ctx, "Job %s completed: %s", j.ID, result.Path)
	}()

	return j
}
