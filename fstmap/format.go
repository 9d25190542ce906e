package fstmap

// On-disk layout (little-endian throughout):
//
//	magic      [4]byte  "FSTM"
//	version    uint32
//	nodeCount  uint64
//	transCount uint64
//	nodes      [nodeCount]nodeRecord
//	transitions [transCount]transRecord
//
// nodeRecord (20 bytes): accept(1) + pad(3) + value(8) + transOff(4) +
// transCount(2) + pad(2).
//
// transRecord (8 bytes): byte(1) + pad(3) + childIndex(4).
//
// This is read back with a single read-only mmap (see reader.go):
// every field access there is a fixed-offset slice read against the raw
// mapped bytes, so Lookup/Walk never deserialize or allocate beyond the
// small amount of bookkeeping they need per call.

const (
	magic      = "FSTM"
	formatVers = uint32(1)

	headerSize     = 4 + 4 + 8 + 8
	nodeRecordSize = 20
	transRecSize   = 8
)

type flatNode struct {
	accept     bool
	value      uint64
	transOff   uint32
	transCount uint16
}

type transRecord struct {
	b          byte
	childIndex uint32
}
