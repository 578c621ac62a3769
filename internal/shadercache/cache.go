package shadercache

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/gogpu/naga"
)

// DefaultCapacity is the capacity of the process-wide cache.
const DefaultCapacity = 64

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic uint32 = 0x07230203

// ErrInvalidSPIRV is returned when the compiler output is not a SPIR-V module.
var ErrInvalidSPIRV = errors.New("shadercache: invalid SPIR-V")

// CompileFunc turns WGSL source into SPIR-V bytes.
type CompileFunc func(source string) ([]byte, error)

// Cache is an LRU of compiled SPIR-V modules.
type Cache struct {
	mu       sync.Mutex
	entries  map[uint64]*entry
	order    lruList
	capacity int
	compile  CompileFunc

	hits   uint64
	misses uint64
}

type entry struct {
	words []uint32
	node  *lruNode
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the maximum number of entries.
	Capacity int
	// Hits is the number of lookups served from the cache.
	Hits uint64
	// Misses is the number of lookups that invoked the compiler.
	Misses uint64
}

var (
	defaultOnce  sync.Once
	defaultCache *Cache
)

// Default returns the process-wide cache backed by naga.Compile.
func Default() *Cache {
	defaultOnce.Do(func() {
		defaultCache = New(DefaultCapacity, nil)
	})
	return defaultCache
}

// New creates a cache holding at most capacity modules. A capacity below 1
// is treated as 1. A nil compile uses naga.Compile.
func New(capacity int, compile CompileFunc) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	if compile == nil {
		compile = compileWGSL
	}
	return &Cache{
		entries:  make(map[uint64]*entry),
		capacity: capacity,
		compile:  compile,
	}
}

func compileWGSL(source string) ([]byte, error) {
	return naga.Compile(source)
}

// Key returns the cache key of a WGSL source.
func Key(source string) uint64 {
	return xxhash.Sum64String(source)
}

// Compile returns the SPIR-V words for source, compiling on a miss.
// The returned slice is shared and must not be modified.
func (c *Cache) Compile(source string) ([]uint32, error) {
	key := Key(source)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.hits++
		c.order.MoveToFront(e.node)
		return e.words, nil
	}
	c.misses++

	spirv, err := c.compile(source)
	if err != nil {
		return nil, fmt.Errorf("shadercache: compile: %w", err)
	}
	words, err := Words(spirv)
	if err != nil {
		return nil, err
	}

	c.entries[key] = &entry{words: words, node: c.order.PushFront(key)}
	for len(c.entries) > c.capacity {
		oldest, ok := c.order.RemoveOldest()
		if !ok {
			break
		}
		delete(c.entries, oldest)
	}
	return words, nil
}

// Len returns the number of cached modules.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Len:      len(c.entries),
		Capacity: c.capacity,
		Hits:     c.hits,
		Misses:   c.misses,
	}
}

// Words converts SPIR-V bytes to little-endian 32-bit words and checks
// the module header.
func Words(spirv []byte) ([]uint32, error) {
	if len(spirv) < 4 || len(spirv)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSPIRV, len(spirv))
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = uint32(spirv[i*4]) |
			uint32(spirv[i*4+1])<<8 |
			uint32(spirv[i*4+2])<<16 |
			uint32(spirv[i*4+3])<<24
	}
	if words[0] != spirvMagic {
		return nil, fmt.Errorf("%w: magic 0x%08x", ErrInvalidSPIRV, words[0])
	}
	return words, nil
}
