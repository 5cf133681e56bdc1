package xcodeproj

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

const uuidBatchSize = 100

// UUIDGenerator produces a batch of candidate object identifiers. The
// candidates need not be unique; the allocator filters out values already
// present in the project before handing them out. Replace the generator
// via Options to get deterministic identifiers in tests.
type UUIDGenerator func(n int) []string

// defaultUUIDGenerator derives 24-digit uppercase hex identifiers from
// random UUIDs, matching the shape of identifiers Xcode itself assigns.
func defaultUUIDGenerator(n int) []string {
	out := make([]string, n)
	for i := range out {
		u := uuid.New()
		out[i] = strings.ToUpper(hex.EncodeToString(u[:12]))
	}
	return out
}

// uuidAllocator hands out project-unique object identifiers. It asks the
// generator for candidates in batches and rejects any candidate that
// collides with a registered object or with an identifier it already
// handed out this session (handed-out identifiers may not be registered
// yet).
type uuidAllocator struct {
	gen       UUIDGenerator
	store     *objectStore
	generated map[string]bool
	available []string
}

func newUUIDAllocator(gen UUIDGenerator, store *objectStore) *uuidAllocator {
	if gen == nil {
		gen = defaultUUIDGenerator
	}
	return &uuidAllocator{
		gen:       gen,
		store:     store,
		generated: make(map[string]bool),
	}
}

func (a *uuidAllocator) next() string {
	for attempts := 0; len(a.available) == 0; attempts++ {
		if attempts == 100 {
			panic("xcodeproj: identifier generator keeps producing known identifiers")
		}
		a.refill()
	}
	id := a.available[0]
	a.available = a.available[1:]
	return id
}

func (a *uuidAllocator) refill() {
	for _, id := range a.gen(uuidBatchSize) {
		if a.generated[id] || a.store.contains(id) {
			continue
		}
		a.generated[id] = true
		a.available = append(a.available, id)
	}
}
