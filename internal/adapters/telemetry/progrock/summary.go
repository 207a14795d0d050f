package progrock

import (
	"fmt"
	"sync"
	"time"

	"github.com/vito/progrock"
	"go.trai.ch/wikipath/internal/core/ports"
)

// PhaseStatus is the outcome of a finished phase.
type PhaseStatus string

const (
	// PhaseCompleted is a phase that ran and succeeded.
	PhaseCompleted PhaseStatus = "completed"
	// PhaseCached is a phase satisfied from the graph cache.
	PhaseCached PhaseStatus = "cached"
	// PhaseFailed is a phase that returned an error.
	PhaseFailed PhaseStatus = "failed"
)

// Phase is one finished vertex as seen on the progrock stream.
type Phase struct {
	Name     string
	Status   PhaseStatus
	Internal bool
	Duration time.Duration
	Err      string
}

var _ progrock.Writer = (*Summary)(nil)

// Summary is a progrock.Writer that keeps finished vertices in completion
// order and reports each one through the logger as it finishes.
// Internal vertices are kept but not reported.
type Summary struct {
	logger ports.Logger

	mu     sync.Mutex
	phases []Phase
	seen   map[string]struct{}
}

// NewSummary creates a Summary reporting to logger. A nil logger only records.
func NewSummary(logger ports.Logger) *Summary {
	return &Summary{
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

// WriteStatus consumes one update from the recorder.
func (s *Summary) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range update.Vertexes {
		if v.Completed == nil {
			continue
		}
		if _, ok := s.seen[v.Id]; ok {
			continue
		}
		s.seen[v.Id] = struct{}{}

		p := phaseOf(v)
		s.phases = append(s.phases, p)
		s.report(p)
	}
	return nil
}

// Close implements progrock.Writer.
func (s *Summary) Close() error {
	return nil
}

// Phases returns the finished phases in completion order.
func (s *Summary) Phases() []Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Phase(nil), s.phases...)
}

func phaseOf(v *progrock.Vertex) Phase {
	p := Phase{
		Name:     v.Name,
		Status:   PhaseCompleted,
		Internal: v.Internal,
	}
	if v.Started != nil {
		p.Duration = v.Completed.AsTime().Sub(v.Started.AsTime())
	}
	switch {
	case v.Error != nil:
		p.Status = PhaseFailed
		p.Err = *v.Error
	case v.Cached:
		p.Status = PhaseCached
	}
	return p
}

func (s *Summary) report(p Phase) {
	if s.logger == nil || p.Internal {
		return
	}
	switch p.Status {
	case PhaseFailed:
		s.logger.Warn(fmt.Sprintf("%s failed: %s", p.Name, p.Err))
	case PhaseCached:
		s.logger.Info(fmt.Sprintf("%s: cached (%s)", p.Name, p.Duration.Round(time.Millisecond)))
	default:
		s.logger.Info(fmt.Sprintf("%s: done (%s)", p.Name, p.Duration.Round(time.Millisecond)))
	}
}
