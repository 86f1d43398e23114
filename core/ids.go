package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDAllocator hands out unique record identifiers. The portal used to derive
// IDs from the current timestamp, which collides under rapid successive
// inserts; everything now goes through this instead.
type IDAllocator interface {
	// NewID returns a globally unique opaque ID.
	NewID() string
	// NextAdmissionNo returns the next admission number for the given year,
	// e.g. "ANS/2025/38". Numbers are monotonic per allocator instance;
	// callers seed the counter from the highest number already on record.
	NextAdmissionNo(year int) string
}

type idAllocator struct {
	mu     sync.Mutex
	prefix string
	seq    int
}

var _ IDAllocator = (*idAllocator)(nil)

func NewIDAllocator(prefix string, lastSeq int) IDAllocator {
	return &idAllocator{prefix: prefix, seq: lastSeq}
}

func (a *idAllocator) NewID() string {
	return uuid.New().String()
}

func (a *idAllocator) NextAdmissionNo(year int) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	return fmt.Sprintf("%s/%d/%d", a.prefix, year, a.seq)
}

// CurrentYear is mockable for tests.
var CurrentYear = func() int { return time.Now().Year() }
