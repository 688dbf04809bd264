package engine

import (
	"bytes"
	"sync"

	"github.com/google/btree"
)

const memoryDegree = 32

type memoryItem struct {
	key, value []byte
}

func lessMemoryItem(a, b memoryItem) bool {
	return bytes.Compare(a.key, b.key) < 0
}

// Memory keeps pairs in an ordered in-memory btree. Nothing touches disk, so
// Flush is a no-op.
type Memory struct {
	tree *btree.BTreeG[memoryItem]
	lock sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{tree: btree.NewG(memoryDegree, lessMemoryItem)}
}

func OpenMemory(string, Options) (*Memory, error) {
	return NewMemory(), nil
}

func (m *Memory) Insert(key, value []byte) error {
	item := memoryItem{
		key:   append([]byte(nil), key...),
		value: append([]byte(nil), value...),
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	m.tree.ReplaceOrInsert(item)

	return nil
}

func (m *Memory) Get(key []byte) ([]byte, bool, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	item, ok := m.tree.Get(memoryItem{key: key})
	if !ok {
		return nil, false, nil
	}

	return item.value, true, nil
}

func (m *Memory) Len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.tree.Len()
}

func (*Memory) Flush() error {
	return nil
}

func (m *Memory) Close() error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.tree.Clear(false)

	return nil
}
