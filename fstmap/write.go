package fstmap

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// flatten lowers the build trie into parallel node/transition arrays,
// assigning each node a pre-order index so a child's index is always known
// once its subtree returns.
func flatten(n *buildNode, nodes *[]flatNode, trans *[]transRecord) uint32 {
	idx := uint32(len(*nodes))
	*nodes = append(*nodes, flatNode{accept: n.accept, value: n.value})

	bytesOut := sortedChildBytes(n)
	childRecs := make([]transRecord, 0, len(bytesOut))
	for _, bt := range bytesOut {
		childIdx := flatten(n.children[bt], nodes, trans)
		childRecs = append(childRecs, transRecord{b: bt, childIndex: childIdx})
	}

	transOff := uint32(len(*trans))
	*trans = append(*trans, childRecs...)

	(*nodes)[idx].transOff = transOff
	(*nodes)[idx].transCount = uint16(len(childRecs))
	return idx
}

// Finalize writes the FST map built so far to w in the format documented in
// format.go. The caller is responsible for fsyncing and closing the
// underlying file.
func (b *Builder) Finalize(w io.Writer) error {
	var nodes []flatNode
	var trans []transRecord
	flatten(b.root, &nodes, &trans)

	bw := bufio.NewWriterSize(w, 1<<20)

	if _, err := bw.WriteString(magic); err != nil {
		return err
	}
	var hdr [20]byte
	binary.LittleEndian.PutUint32(hdr[0:4], formatVers)
	binary.LittleEndian.PutUint64(hdr[4:12], uint64(len(nodes)))
	binary.LittleEndian.PutUint64(hdr[12:20], uint64(len(trans)))
	if _, err := bw.Write(hdr[:]); err != nil {
		return err
	}

	var nodeBuf [nodeRecordSize]byte
	for _, n := range nodes {
		if n.accept {
			nodeBuf[0] = 1
		} else {
			nodeBuf[0] = 0
		}
		nodeBuf[1], nodeBuf[2], nodeBuf[3] = 0, 0, 0
		binary.LittleEndian.PutUint64(nodeBuf[4:12], n.value)
		binary.LittleEndian.PutUint32(nodeBuf[12:16], n.transOff)
		binary.LittleEndian.PutUint16(nodeBuf[16:18], n.transCount)
		nodeBuf[18], nodeBuf[19] = 0, 0
		if _, err := bw.Write(nodeBuf[:]); err != nil {
			return fmt.Errorf("fstmap: write node record: %w", err)
		}
	}

	var transBuf [transRecSize]byte
	for _, tr := range trans {
		transBuf[0] = tr.b
		transBuf[1], transBuf[2], transBuf[3] = 0, 0, 0
		binary.LittleEndian.PutUint32(transBuf[4:8], tr.childIndex)
		if _, err := bw.Write(transBuf[:]); err != nil {
			return fmt.Errorf("fstmap: write transition record: %w", err)
		}
	}

	return bw.Flush()
}
