package bot

import "sync"

// Sequencer runs jobs one at a time per user, in the order they were
// submitted. Jobs of different users run concurrently.
type Sequencer struct {
	mu     sync.Mutex
	queues map[int64][]func()
	wg     sync.WaitGroup
}

func NewSequencer() *Sequencer {
	return &Sequencer{queues: make(map[int64][]func())}
}

// Submit queues job behind the user's pending jobs. It does not block, so
// transports call it from their receive loop to keep arrival order.
func (s *Sequencer) Submit(userID int64, job func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, draining := s.queues[userID]
	s.queues[userID] = append(pending, job)
	if !draining {
		s.wg.Add(1)
		go s.drain(userID)
	}
}

// Wait blocks until every submitted job has finished
func (s *Sequencer) Wait() {
	s.wg.Wait()
}

// drain owns the user's queue until it is empty
func (s *Sequencer) drain(userID int64) {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		pending := s.queues[userID]
		if len(pending) == 0 {
			delete(s.queues, userID)
			s.mu.Unlock()
			return
		}
		job := pending[0]
		pending[0] = nil
		s.queues[userID] = pending[1:]
		s.mu.Unlock()

		job()
	}
}

func (s *Sequencer) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queues)
}
