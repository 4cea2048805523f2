package translate

import "sync/atomic"

// Sequencer hands out request tokens. Only the response to the latest token is current.
type Sequencer struct {
	latest atomic.Uint64
}

func (s *Sequencer) Next() uint64 {
	return s.latest.Add(1)
}

func (s *Sequencer) IsLatest(token uint64) bool {
	return s.latest.Load() == token
}
