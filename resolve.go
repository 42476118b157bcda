package lionpack

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Block names with known sub-formats.
const (
	blockInfo       = "INFO"
	blockMeshes     = "MESHES"
	blockBody       = "Body"
	blockAudioTable = "LHAudioBankSampleTable"
	blockWaveData   = "LHAudioWaveData"
)

// subMagic opens MESHES and Body blocks.
const subMagic = "MKJC"

// InfoLookupEntry maps one texture to the block carrying its DDS stream.
// The lowercase, unpadded hexadecimal string of BlockID is the block key.
type InfoLookupEntry struct {
	BlockID uint32
	Unknown uint32
}

// BodyLookupEntry locates one animation header inside the Body block.
// Offset is a byte offset into the Body block where the fixed-size
// animation header begins.
type BodyLookupEntry struct {
	Offset  uint32
	Unknown uint32
}

// resolveInfo decodes an INFO block into its texture lookup table.
func resolveInfo(data []byte) ([]InfoLookupEntry, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: INFO block cannot fit texture count", ErrTruncatedBlock)
	}
	count := binary.LittleEndian.Uint32(data)
	if uint64(len(data)-4) < uint64(count)*8 {
		return nil, fmt.Errorf("%w: INFO block cannot fit %d lookup entries", ErrTruncatedBlock, count)
	}
	entries := make([]InfoLookupEntry, count)
	for i := range entries {
		off := 4 + i*8
		entries[i] = InfoLookupEntry{
			BlockID: binary.LittleEndian.Uint32(data[off:]),
			Unknown: binary.LittleEndian.Uint32(data[off+4:]),
		}
	}
	return entries, nil
}

// resolveBody decodes a Body block into its animation lookup table.
func resolveBody(data []byte) ([]BodyLookupEntry, error) {
	if len(data) < len(subMagic)+4 {
		return nil, fmt.Errorf("%w: Body block cannot fit animation count", ErrTruncatedBlock)
	}
	if !bytes.Equal(data[:len(subMagic)], []byte(subMagic)) {
		return nil, fmt.Errorf("%w: Body block", ErrBadSubMagic)
	}
	count := binary.LittleEndian.Uint32(data[len(subMagic):])
	if uint64(len(data)-8) < uint64(count)*8 {
		return nil, fmt.Errorf("%w: Body block cannot fit %d lookup entries", ErrTruncatedBlock, count)
	}
	entries := make([]BodyLookupEntry, count)
	for i := range entries {
		off := 8 + i*8
		entries[i] = BodyLookupEntry{
			Offset:  binary.LittleEndian.Uint32(data[off:]),
			Unknown: binary.LittleEndian.Uint32(data[off+4:]),
		}
	}
	return entries, nil
}

// resolveMeshOffsets decodes a MESHES block's offset table. Offsets are
// relative to the end of the magic+count prefix, so the first offset of a
// well-formed block equals the table's own size. The extractor validates
// and slices the mesh byte ranges.
func resolveMeshOffsets(data []byte) ([]uint32, error) {
	if len(data) < len(subMagic)+4 {
		return nil, fmt.Errorf("%w: MESHES block cannot fit mesh count", ErrTruncatedBlock)
	}
	if !bytes.Equal(data[:len(subMagic)], []byte(subMagic)) {
		return nil, fmt.Errorf("%w: MESHES block", ErrBadSubMagic)
	}
	count := binary.LittleEndian.Uint32(data[len(subMagic):])
	if uint64(len(data)-8) < uint64(count)*4 {
		return nil, fmt.Errorf("%w: MESHES block cannot fit %d offsets", ErrTruncatedBlock, count)
	}
	offsets := make([]uint32, count)
	for i := range offsets {
		offsets[i] = binary.LittleEndian.Uint32(data[8+i*4:])
	}
	return offsets, nil
}

// resolveAudioTable decodes an LHAudioBankSampleTable block. The u16
// following the sample count is preserved for round-trip but unused. The
// block must hold exactly sampleCount fixed-size records.
func resolveAudioTable(data []byte) (unknown uint16, headers []AudioSampleHeader, err error) {
	if len(data) < 4 {
		return 0, nil, fmt.Errorf("%w: audio table cannot fit sample count", ErrTruncatedBlock)
	}
	count := binary.LittleEndian.Uint16(data)
	unknown = binary.LittleEndian.Uint16(data[2:])
	if count == 0 {
		return 0, nil, ErrEmptyAudioTable
	}
	if len(data)-4 != int(count)*audioSampleHeaderSize {
		return 0, nil, fmt.Errorf("%w: %d bytes cannot fit exactly %d sample headers",
			ErrSizeMismatch, len(data)-4, count)
	}
	headers = make([]AudioSampleHeader, count)
	for i := range headers {
		off := 4 + i*audioSampleHeaderSize
		if headers[i], err = decodeAudioSampleHeader(data[off : off+audioSampleHeaderSize]); err != nil {
			return 0, nil, err
		}
	}
	return unknown, headers, nil
}
