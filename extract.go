package lionpack

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
)

const (
	textureHeaderSize   = 16
	animationHeaderSize = 0x54
)

// TextureHeader is the fixed 16-byte header at the start of a texture
// block. DDSFileSize is the length of the DDS stream that follows it.
type TextureHeader struct {
	Size        uint32
	BlockID     uint32
	Type        uint32
	DDSFileSize uint32
}

// Texture is one decoded texture: the block header, the parsed DDS header,
// and the texel bytes following it.
type Texture struct {
	Header TextureHeader
	DDS    DDSHeader
	Texels []byte
}

// EncodeDDS writes the texture's DDS header and texel bytes to w. Prepend
// DDSMagic to produce a standalone .dds file.
func (t *Texture) EncodeDDS(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, &t.DDS); err != nil {
		return err
	}
	_, err := w.Write(t.Texels)
	return err
}

// blockKey formats a texture block id the way the container names texture
// blocks: lowercase hexadecimal with no zero padding.
func blockKey(id uint32) string {
	return strconv.FormatUint(uint64(id), 16)
}

// julienKey names the animation metadata block for lookup index i.
func julienKey(i int) string {
	return "Julien" + strconv.Itoa(i)
}

// extractTextures materializes one Texture per INFO lookup entry, keyed by
// the hex-string block id. keys preserves lookup order for deterministic
// iteration.
func extractTextures(store *blockStore, lookup []InfoLookupEntry) (textures map[string]Texture, keys []string, err error) {
	textures = make(map[string]Texture, len(lookup))
	keys = make([]string, 0, len(lookup))
	for _, entry := range lookup {
		key := blockKey(entry.BlockID)
		data, err := store.get(key)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: texture block %q", ErrMissingBlock, key)
		}
		if len(data) < textureHeaderSize {
			return nil, nil, fmt.Errorf("%w: texture block %q cannot fit its header", ErrTruncatedBlock, key)
		}
		hdr := TextureHeader{
			Size:        binary.LittleEndian.Uint32(data),
			BlockID:     binary.LittleEndian.Uint32(data[4:]),
			Type:        binary.LittleEndian.Uint32(data[8:]),
			DDSFileSize: binary.LittleEndian.Uint32(data[12:]),
		}
		if hdr.BlockID != entry.BlockID {
			return nil, nil, fmt.Errorf("%w: block %q carries id %x", ErrIDMismatch, key, hdr.BlockID)
		}
		if _, ok := textures[key]; ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrDuplicateTexture, key)
		}

		rest := data[textureHeaderSize:]
		if uint64(len(rest)) < uint64(hdr.DDSFileSize) {
			return nil, nil, fmt.Errorf("%w: texture block %q declares %d DDS bytes, %d remain",
				ErrTruncatedBlock, key, hdr.DDSFileSize, len(rest))
		}
		dds := rest[:hdr.DDSFileSize]

		ddsHeader, err := parseDDSHeader(dds)
		if err != nil {
			return nil, nil, fmt.Errorf("texture block %q: %w", key, err)
		}
		texels := dds[ddsHeaderSize:]
		if uint64(len(texels)) < uint64(ddsHeader.PitchOrLinearSize) {
			return nil, nil, fmt.Errorf("%w: texture block %q needs %d texel bytes, %d remain",
				ErrTruncatedBlock, key, ddsHeader.PitchOrLinearSize, len(texels))
		}

		textures[key] = Texture{Header: hdr, DDS: ddsHeader, Texels: texels[:ddsHeader.PitchOrLinearSize]}
		keys = append(keys, key)
	}
	return textures, keys, nil
}

// extractMeshes slices mesh byte ranges out of a MESHES block payload.
// Offsets are relative to the end of the magic+count prefix; mesh i spans
// [offsets[i], offsets[i+1]), the last mesh ending at the block payload.
// Offsets must be non-decreasing, must not point into the offset table, and
// must stay inside the block.
func extractMeshes(data []byte, offsets []uint32) ([][]byte, error) {
	base := len(subMagic) + 4
	end := uint32(len(data) - base)
	tableSize := uint32(len(offsets)) * 4

	meshes := make([][]byte, len(offsets))
	for i, off := range offsets {
		stop := end
		if i+1 < len(offsets) {
			stop = offsets[i+1]
		}
		if off < tableSize || off > stop || stop > end {
			return nil, fmt.Errorf("%w: mesh %d spans [%d, %d) of %d payload bytes",
				ErrInvalidMeshOffsets, i, off, stop, end)
		}
		meshes[i] = data[base+int(off) : base+int(stop)]
	}
	return meshes, nil
}

// extractAnimations builds one animation record per Body lookup entry: the
// fixed-size header sliced from the Body block at the entry's offset,
// concatenated with the full payload of the matching Julien block.
func extractAnimations(store *blockStore, body []byte, lookup []BodyLookupEntry) ([][]byte, error) {
	animations := make([][]byte, len(lookup))
	for i, entry := range lookup {
		name := julienKey(i)
		meta, err := store.get(name)
		if err != nil {
			return nil, fmt.Errorf("%w: animation block %q", ErrMissingBlock, name)
		}
		if uint64(entry.Offset)+animationHeaderSize > uint64(len(body)) {
			return nil, fmt.Errorf("%w: animation %d header at offset %d exceeds Body block",
				ErrTruncatedBlock, i, entry.Offset)
		}
		record := make([]byte, animationHeaderSize+len(meta))
		copy(record, body[entry.Offset:int(entry.Offset)+animationHeaderSize])
		copy(record[animationHeaderSize:], meta)
		animations[i] = record
	}
	return animations, nil
}

// extractSounds slices each sample's waveform bytes out of the
// LHAudioWaveData block payload.
func extractSounds(wave []byte, headers []AudioSampleHeader) ([][]byte, error) {
	sounds := make([][]byte, len(headers))
	for i := range headers {
		h := &headers[i]
		if uint64(h.Offset)+uint64(h.Size) > uint64(len(wave)) {
			return nil, fmt.Errorf("%w: sample %q at [%d, %d) of %d wave bytes",
				ErrInvalidSampleRange, h.NameString(), h.Offset, uint64(h.Offset)+uint64(h.Size), len(wave))
		}
		sounds[i] = wave[h.Offset : h.Offset+h.Size]
	}
	return sounds, nil
}
