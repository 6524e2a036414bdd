package openapi_server

import (
	"sync"

	"github.com/google/uuid"
)

// SolutionStore keeps the latest solutions in memory.
// When the capacity is reached, the oldest solution is dropped.
type SolutionStore struct {
	mu        sync.Mutex
	capacity  int
	solutions map[uuid.UUID]Solution
	order     []uuid.UUID // insertion order, oldest first
}

func NewSolutionStore(capacity int) *SolutionStore {
	if capacity < 1 {
		capacity = 1
	}
	return &SolutionStore{
		capacity:  capacity,
		solutions: make(map[uuid.UUID]Solution),
		order:     make([]uuid.UUID, 0, capacity),
	}
}

// Put stores the solution and returns the number of stored solutions
func (s *SolutionStore) Put(id uuid.UUID, solution Solution) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.solutions[id]; !ok {
		if len(s.order) == s.capacity {
			delete(s.solutions, s.order[0])
			s.order = s.order[1:]
		}
		s.order = append(s.order, id)
	}
	s.solutions[id] = solution
	return len(s.solutions)
}

func (s *SolutionStore) Get(id uuid.UUID) (Solution, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	solution, ok := s.solutions[id]
	return solution, ok
}

func (s *SolutionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.solutions)
}
