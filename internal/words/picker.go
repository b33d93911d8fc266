package words

import (
	"crypto/rand"
	"math/big"
	"sync"
)

// Picker chooses an index in [0, n). Implementations must handle n >= 1.
type Picker interface {
	Pick(n int) int
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(n int) int

func (f PickerFunc) Pick(n int) int { return f(n) }

// CryptoPicker draws uniformly using crypto/rand.
type CryptoPicker struct{}

func (CryptoPicker) Pick(n int) int {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}

// FixedPicker always returns the same index (modulo n).
type FixedPicker int

func (f FixedPicker) Pick(n int) int { return int(f) % n }

// SequencePicker returns its indexes in order and then repeats the last one.
type SequencePicker struct {
	mu  sync.Mutex
	seq []int
	pos int
}

// NewSequencePicker returns a picker that yields idx in order.
func NewSequencePicker(idx ...int) *SequencePicker {
	return &SequencePicker{seq: idx}
}

func (s *SequencePicker) Pick(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.seq) == 0 {
		return 0
	}
	i := s.seq[s.pos]
	if s.pos < len(s.seq)-1 {
		s.pos++
	}
	return i % n
}
