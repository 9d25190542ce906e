package fstmap

import (
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/gridword/puzzlesearch/internal/wordauto"
)

// Map is an immutable, memory-mapped FST map opened read-only from an
// artifact written by Builder.Finalize. The mapping is never mutated after
// Open returns; callers must not write to the backing file while a Map has
// it open.
type Map struct {
	data       []byte
	nodeCount  uint64
	transCount uint64
	nodesOff   int
	transOff   int
}

// Open memory-maps path and validates its header. The returned Map must be
// closed with Close to release the mapping.
func Open(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fstmap: open %q: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("fstmap: stat %q: %w", path, err)
	}
	size := int(info.Size())
	if size < headerSize+4 {
		return nil, fmt.Errorf("fstmap: %q too small to be a valid artifact", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("fstmap: mmap %q: %w", path, err)
	}

	if string(data[0:4]) != magic {
		unix.Munmap(data)
		return nil, fmt.Errorf("fstmap: %q has bad magic", path)
	}
	vers := binary.LittleEndian.Uint32(data[4:8])
	if vers != formatVers {
		unix.Munmap(data)
		return nil, fmt.Errorf("fstmap: %q has unsupported version %d", path, vers)
	}
	nodeCount := binary.LittleEndian.Uint64(data[8:16])
	transCount := binary.LittleEndian.Uint64(data[16:24])

	nodesOff := headerSize
	transOffAbs := nodesOff + int(nodeCount)*nodeRecordSize
	want := transOffAbs + int(transCount)*transRecSize
	if size < want {
		unix.Munmap(data)
		return nil, fmt.Errorf("fstmap: %q truncated: want at least %d bytes, have %d", path, want, size)
	}

	return &Map{
		data:       data,
		nodeCount:  nodeCount,
		transCount: transCount,
		nodesOff:   nodesOff,
		transOff:   transOffAbs,
	}, nil
}

// Close unmaps the artifact. The Map must not be used afterward.
func (m *Map) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	return err
}

func (m *Map) nodeRecord(idx uint32) flatNode {
	off := m.nodesOff + int(idx)*nodeRecordSize
	b := m.data[off : off+nodeRecordSize]
	return flatNode{
		accept:     b[0] != 0,
		value:      binary.LittleEndian.Uint64(b[4:12]),
		transOff:   binary.LittleEndian.Uint32(b[12:16]),
		transCount: binary.LittleEndian.Uint16(b[16:18]),
	}
}

func (m *Map) transRecord(idx uint32) transRecord {
	off := m.transOff + int(idx)*transRecSize
	b := m.data[off : off+transRecSize]
	return transRecord{
		b:          b[0],
		childIndex: binary.LittleEndian.Uint32(b[4:8]),
	}
}

// childIndex returns the node index reached from node by byte c, and
// whether such a transition exists. Transitions within a node are stored in
// ascending byte order, so this binary-searches them.
func (m *Map) childIndex(node flatNode, c byte) (uint32, bool) {
	lo, hi := 0, int(node.transCount)
	for lo < hi {
		mid := (lo + hi) / 2
		tr := m.transRecord(node.transOff + uint32(mid))
		switch {
		case tr.b == c:
			return tr.childIndex, true
		case tr.b < c:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0, false
}

// Lookup reports the frequency count stored for word, if present.
func (m *Map) Lookup(word string) (uint64, bool) {
	node := m.nodeRecord(0)
	for i := 0; i < len(word); i++ {
		idx, ok := m.childIndex(node, word[i])
		if !ok {
			return 0, false
		}
		node = m.nodeRecord(idx)
	}
	if !node.accept {
		return 0, false
	}
	return node.value, true
}

// MatchFunc receives each word the walk accepts, along with its stored
// count. Walk stops early if fn returns false.
type MatchFunc func(word string, count uint64) bool

// Walk drives dfa and the trie in lockstep, visiting every (node, state)
// pair reachable by a common byte string and reporting every word where
// both the trie node is accepting and the automaton state is accepting.
// Traversal prunes the moment either side has no live transition for the
// next byte, giving the FST-composed search its sub-linear behavior.
func (m *Map) Walk(dfa *wordauto.DFA, fn MatchFunc) {
	buf := make([]byte, 0, dfa.Len())
	m.walk(0, dfa.Start(), dfa, buf, fn)
}

func (m *Map) walk(nodeIdx uint32, state wordauto.StateID, dfa *wordauto.DFA, prefix []byte, fn MatchFunc) bool {
	node := m.nodeRecord(nodeIdx)
	if node.accept && dfa.IsAccepting(state) {
		if !fn(string(prefix), node.value) {
			return false
		}
	}
	if int(node.transCount) == 0 {
		return true
	}

	for i := uint16(0); i < node.transCount; i++ {
		tr := m.transRecord(node.transOff + uint32(i))
		next := dfa.Step(state, tr.b)
		if next == wordauto.DeadState {
			continue
		}
		if !m.walk(tr.childIndex, next, dfa, append(prefix, tr.b), fn) {
			return false
		}
	}
	return true
}
