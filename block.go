package lionpack

import "fmt"

// blockStore holds raw block payloads keyed by name. Name uniqueness is a
// hard invariant of the container. Insertion order is preserved so a write
// pass emits blocks in the order they were created, keeping load/save
// cycles byte-exact.
type blockStore struct {
	blocks map[string][]byte
	order  []string
}

func newBlockStore() *blockStore {
	return &blockStore{blocks: make(map[string][]byte)}
}

func (s *blockStore) put(name string, data []byte) error {
	if _, ok := s.blocks[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateBlock, name)
	}
	s.blocks[name] = data
	s.order = append(s.order, name)
	return nil
}

func (s *blockStore) get(name string) ([]byte, error) {
	data, ok := s.blocks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBlockNotFound, name)
	}
	return data, nil
}

func (s *blockStore) has(name string) bool {
	_, ok := s.blocks[name]
	return ok
}

func (s *blockStore) len() int {
	return len(s.blocks)
}

// names returns block names in insertion order. The returned slice is a
// copy; callers may not mutate store order through it.
func (s *blockStore) names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
