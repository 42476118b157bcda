package lionpack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	packMagic = "LiOnHeAd"

	blockNameSize   = 32
	blockHeaderSize = blockNameSize + 4
)

// cstring returns b up to its first NUL byte.
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// readBlocks parses the outer container framing of data into store.
//
// The loop accepts a file whose last block ends exactly at EOF; any shorter
// non-zero remainder cannot hold a block header and is rejected.
func readBlocks(data []byte, store *blockStore) error {
	if len(data) < len(packMagic)+blockHeaderSize {
		return fmt.Errorf("%w: %d bytes is too small for a pack file", ErrTruncatedBlock, len(data))
	}
	if !bytes.Equal(data[:len(packMagic)], []byte(packMagic)) {
		return ErrBadMagic
	}

	pos := len(packMagic)
	for pos < len(data) {
		if len(data)-pos < blockHeaderSize {
			return fmt.Errorf("%w: %d trailing bytes after last block", ErrMisalignedTrailer, len(data)-pos)
		}
		name := cstring(data[pos : pos+blockNameSize])
		size := binary.LittleEndian.Uint32(data[pos+blockNameSize : pos+blockHeaderSize])
		pos += blockHeaderSize

		if uint64(size) > uint64(len(data)-pos) {
			return fmt.Errorf("%w: block %q declares %d bytes, %d remain", ErrTruncatedBlock, name, size, len(data)-pos)
		}
		payload := make([]byte, size)
		copy(payload, data[pos:pos+int(size)])
		if err := store.put(name, payload); err != nil {
			return err
		}
		pos += int(size)
	}
	return nil
}

// writeBlocks emits the container magic and every stored block, header then
// payload, unpadded, in insertion order.
func writeBlocks(w io.Writer, store *blockStore) error {
	if _, err := io.WriteString(w, packMagic); err != nil {
		return err
	}
	var hdr [blockHeaderSize]byte
	for _, name := range store.order {
		payload := store.blocks[name]
		clear(hdr[:blockNameSize])
		copy(hdr[:blockNameSize], name)
		binary.LittleEndian.PutUint32(hdr[blockNameSize:], uint32(len(payload)))
		if _, err := w.Write(hdr[:]); err != nil {
			return err
		}
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}
	return nil
}
