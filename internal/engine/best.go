package engine

import (
	"strconv"
	"strings"
	"sync"
)

// KV is the durable key/value capability used for best scores and flags.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Direction is the comparison semantics of a best score.
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

// Better reports whether a strictly improves on b.
func (d Direction) Better(a, b int) bool {
	if d == LowerIsBetter {
		return a < b
	}
	return a > b
}

// Best is a per-game best score record backed by a KV.
type Best struct {
	kv     KV
	key    string
	dir    Direction
	value  int
	has    bool
	seeded bool
}

// LoadBest reads the record once. A missing, unreadable or non-numeric
// value means there is no prior best.
func LoadBest(kv KV, key string, dir Direction) *Best {
	b := &Best{kv: kv, key: key, dir: dir}
	if kv == nil || key == "" {
		return b
	}
	raw, ok := kv.Get(key)
	if !ok {
		return b
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return b
	}
	b.value, b.has = v, true
	return b
}

// Seed makes v the value a first result must strictly beat while no best
// is stored. A stored best takes precedence.
func (b *Best) Seed(v int) {
	if !b.has {
		b.value, b.seeded = v, true
	}
}

// Value returns the best value and whether one exists.
func (b *Best) Value() (int, bool) {
	return b.value, b.has
}

// Direction returns the comparison semantics.
func (b *Best) Direction() Direction {
	return b.dir
}

// Submit records result if it strictly improves on the current best and
// reports whether it did. The write is attempted only on improvement;
// a failing store leaves the in-memory record updated.
func (b *Best) Submit(result int) bool {
	if (b.has || b.seeded) && !b.dir.Better(result, b.value) {
		return false
	}
	b.value, b.has = result, true
	if b.kv != nil && b.key != "" {
		_ = b.kv.Set(b.key, strconv.Itoa(result))
	}
	return true
}

// MemoryKV is an in-process KV.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
	writes int
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get returns the stored value for key.
func (m *MemoryKV) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.writes++
	return nil
}

// Writes returns how many Set calls succeeded.
func (m *MemoryKV) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Flag reads a boolean flag stored as the literal "true".
func Flag(kv KV, key string) bool {
	if kv == nil {
		return false
	}
	v, ok := kv.Get(key)
	return ok && v == "true"
}

// SetFlag stores a boolean flag as "true". Errors are ignored.
func SetFlag(kv KV, key string) {
	if kv == nil {
		return
	}
	_ = kv.Set(key, "true")
}
