package lionpack

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// rawBlock holds data for assembling test pack images.
type rawBlock struct {
	name string
	data []byte
}

// buildPack assembles a raw pack file image from blocks, in order.
func buildPack(tb testing.TB, blocks ...rawBlock) []byte {
	tb.Helper()

	var buf bytes.Buffer
	buf.WriteString(packMagic)
	for _, b := range blocks {
		var hdr [blockHeaderSize]byte
		copy(hdr[:blockNameSize], b.name)
		binary.LittleEndian.PutUint32(hdr[blockNameSize:], uint32(len(b.data)))
		buf.Write(hdr[:])
		buf.Write(b.data)
	}
	return buf.Bytes()
}

// buildMeshBlock lays out a MESHES block payload with a well-formed offset
// table (first offset equals the table size).
func buildMeshBlock(tb testing.TB, meshes ...[]byte) []byte {
	tb.Helper()

	data := []byte(subMagic)
	data = binary.LittleEndian.AppendUint32(data, uint32(len(meshes)))
	offset := uint32(4 * len(meshes))
	for _, mesh := range meshes {
		data = binary.LittleEndian.AppendUint32(data, offset)
		offset += uint32(len(mesh))
	}
	for _, mesh := range meshes {
		data = append(data, mesh...)
	}
	return data
}

// buildDDSStream returns a DDS stream (header + texels) as stored inside a
// texture block, i.e. without the "DDS " magic.
func buildDDSStream(tb testing.TB, width, height, pitch uint32, fourCC string, texels []byte) []byte {
	tb.Helper()

	h := DDSHeader{
		Size:              ddsHeaderSize,
		Height:            height,
		Width:             width,
		PitchOrLinearSize: pitch,
	}
	h.Format.Size = ddsPixelFormatSize
	copy(h.Format.FourCC[:], fourCC)

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &h); err != nil {
		tb.Fatalf("encode DDS header: %v", err)
	}
	buf.Write(texels)
	return buf.Bytes()
}

// buildTextureBlock returns a full texture block payload for the given id.
func buildTextureBlock(tb testing.TB, id uint32, dds []byte) []byte {
	tb.Helper()

	data := make([]byte, 0, textureHeaderSize+len(dds))
	data = binary.LittleEndian.AppendUint32(data, uint32(len(dds))+12)
	data = binary.LittleEndian.AppendUint32(data, id)
	data = binary.LittleEndian.AppendUint32(data, 0)
	data = binary.LittleEndian.AppendUint32(data, uint32(len(dds)))
	return append(data, dds...)
}

// buildInfoBlock serializes an INFO block from lookup entries.
func buildInfoBlock(tb testing.TB, entries ...InfoLookupEntry) []byte {
	tb.Helper()

	data := binary.LittleEndian.AppendUint32(nil, uint32(len(entries)))
	for _, e := range entries {
		data = binary.LittleEndian.AppendUint32(data, e.BlockID)
		data = binary.LittleEndian.AppendUint32(data, e.Unknown)
	}
	return data
}

// buildAudioTable serializes an LHAudioBankSampleTable block.
func buildAudioTable(tb testing.TB, unknown uint16, headers ...AudioSampleHeader) []byte {
	tb.Helper()

	var buf bytes.Buffer
	var prefix [4]byte
	binary.LittleEndian.PutUint16(prefix[:], uint16(len(headers)))
	binary.LittleEndian.PutUint16(prefix[2:], unknown)
	buf.Write(prefix[:])
	for i := range headers {
		if err := headers[i].encode(&buf); err != nil {
			tb.Fatalf("encode sample header: %v", err)
		}
	}
	return buf.Bytes()
}
