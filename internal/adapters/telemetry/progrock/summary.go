package progrock

import (
	"fmt"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

// StageResult is the last known state of one recorded vertex.
type StageResult struct {
	ID       string
	Name     string
	Status   domain.StageStatus
	Err      string
	Internal bool
}

// Summary is a progrock.Writer that tracks vertex state and reports every
// user-facing stage through the logger when closed.
type Summary struct {
	logger ports.Logger

	mu     sync.Mutex
	stages []StageResult
	closed bool
}

// NewSummary creates a Summary reporting to logger.
func NewSummary(logger ports.Logger) *Summary {
	return &Summary{logger: logger}
}

// WriteStatus applies a status update.
func (s *Summary) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range update.Vertexes {
		s.updateOrAdd(v)
	}
	return nil
}

func (s *Summary) updateOrAdd(v *progrock.Vertex) {
	idx := -1
	for i := range s.stages {
		if s.stages[i].ID == v.Id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.stages = append(s.stages, StageResult{ID: v.Id, Name: v.Name, Status: domain.StageRunning})
		idx = len(s.stages) - 1
	}

	st := &s.stages[idx]
	st.Internal = v.Internal
	switch {
	case v.Cached:
		st.Status = domain.StageCached
	case v.Completed != nil && v.Error != nil:
		st.Status = domain.StageFailed
		st.Err = *v.Error
	case v.Completed != nil:
		st.Status = domain.StageCompleted
	}
}

// Stages returns a snapshot of the tracked vertices in first-seen order.
func (s *Summary) Stages() []StageResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]StageResult(nil), s.stages...)
}

// Close reports the tracked stages. Subsequent calls do nothing.
func (s *Summary) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for _, st := range s.stages {
		if st.Internal {
			continue
		}
		switch st.Status {
		case domain.StageCompleted:
			s.logger.Info("✓ " + st.Name)
		case domain.StageCached:
			s.logger.Info("~ " + st.Name + " (up to date)")
		case domain.StageFailed:
			s.logger.Warn(fmt.Sprintf("✗ %s: %s", st.Name, st.Err))
		default:
			s.logger.Warn("… " + st.Name + " (interrupted)")
		}
	}
	return nil
}
