package lionpack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// requireAuthoring moves a fresh Pack into the authoring state, or rejects
// the operation if a load or write pass already completed.
func (p *Pack) requireAuthoring(op string) error {
	switch p.state {
	case stateEmpty:
		p.state = stateAuthoring
		return nil
	case stateAuthoring:
		return nil
	default:
		return fmt.Errorf("lionpack: %s: %w", op, ErrAlreadyFinalized)
	}
}

// InsertBlock stores a raw named block for the next write pass. The name
// must fit the 32-byte NUL-terminated header field and the payload must fit
// the u32 size field.
func (p *Pack) InsertBlock(name string, data []byte) error {
	if err := p.requireAuthoring("insert block"); err != nil {
		return err
	}
	if name == "" || len(name) > blockNameSize-1 {
		return fmt.Errorf("%w: %q", ErrInvalidBlockName, name)
	}
	if uint64(len(data)) > p.maxBlockSize {
		return fmt.Errorf("%w: block %q is %d bytes", ErrBlockTooLarge, name, len(data))
	}
	return p.blocks.put(name, data)
}

// InsertMesh appends a raw mesh payload. The write pass synthesizes the
// MESHES block and recomputes its offset table.
func (p *Pack) InsertMesh(data []byte) error {
	if err := p.requireAuthoring("insert mesh"); err != nil {
		return err
	}
	p.meshes = append(p.meshes, data)
	return nil
}

// InsertInfoEntry appends a texture lookup entry. The write pass serializes
// the table verbatim into the INFO block; the texture block itself is
// inserted separately under its hex-string key.
func (p *Pack) InsertInfoEntry(entry InfoLookupEntry) error {
	if err := p.requireAuthoring("insert info entry"); err != nil {
		return err
	}
	p.infoLookup = append(p.infoLookup, entry)
	return nil
}

// InsertBodyEntry appends an animation lookup entry. The write pass
// serializes the table verbatim into the Body block; the matching Julien
// block is inserted separately.
func (p *Pack) InsertBodyEntry(entry BodyLookupEntry) error {
	if err := p.requireAuthoring("insert body entry"); err != nil {
		return err
	}
	p.bodyLookup = append(p.bodyLookup, entry)
	return nil
}

// InsertSound appends a sample header and its waveform bytes. The write
// pass synthesizes LHAudioBankSampleTable and LHAudioWaveData, recomputing
// each header's Offset and Size against the concatenated wave block.
func (p *Pack) InsertSound(header AudioSampleHeader, wave []byte) error {
	if err := p.requireAuthoring("insert sound"); err != nil {
		return err
	}
	p.sampleHeaders = append(p.sampleHeaders, header)
	p.sounds = append(p.sounds, wave)
	return nil
}

// Write synthesizes blocks for the accreted collections and writes the
// container to path atomically. Write finalizes the Pack; it may be called
// once, and never on a loaded Pack.
func (p *Pack) Write(path string) error {
	if p.state != stateEmpty && p.state != stateAuthoring {
		return fmt.Errorf("lionpack: write %s: %w", path, ErrAlreadyFinalized)
	}
	if err := p.synthesizeBlocks(); err != nil {
		return fmt.Errorf("lionpack: write %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := writeBlocks(&buf, p.blocks); err != nil {
		return fmt.Errorf("lionpack: write %s: %w", path, err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("lionpack: write %s: %w", path, err)
	}

	p.name = path
	p.state = stateWritten
	p.log().Debug("pack written", "file", path, "blocks", p.blocks.len(), "bytes", buf.Len())
	return nil
}

// synthesizeBlocks turns the accreted collections into named blocks. Blocks
// inserted raw under the same names are rejected as duplicates.
func (p *Pack) synthesizeBlocks() error {
	if len(p.meshes) > 0 {
		if err := p.createMeshBlock(); err != nil {
			return err
		}
	}
	if len(p.infoLookup) > 0 {
		if err := p.createInfoBlock(); err != nil {
			return err
		}
	}
	if len(p.bodyLookup) > 0 {
		if err := p.createBodyBlock(); err != nil {
			return err
		}
	}
	if len(p.sampleHeaders) > 0 {
		if err := p.createAudioBlocks(); err != nil {
			return err
		}
	}
	return nil
}

// createMeshBlock lays out the MESHES block: sub-magic, count, offset
// table, then the mesh payloads back to back. Offsets are relative to the
// end of the magic+count prefix, so the first offset equals the table size.
func (p *Pack) createMeshBlock() error {
	count := len(p.meshes)
	size := len(subMagic) + 4 + 4*count
	for _, mesh := range p.meshes {
		size += len(mesh)
	}
	if uint64(size) > p.maxBlockSize {
		return fmt.Errorf("%w: block %q is %d bytes", ErrBlockTooLarge, blockMeshes, size)
	}

	data := make([]byte, 0, size)
	data = append(data, subMagic...)
	data = binary.LittleEndian.AppendUint32(data, uint32(count))
	offset := uint32(4 * count)
	for _, mesh := range p.meshes {
		data = binary.LittleEndian.AppendUint32(data, offset)
		offset += uint32(len(mesh))
	}
	for _, mesh := range p.meshes {
		data = append(data, mesh...)
	}
	return p.blocks.put(blockMeshes, data)
}

func (p *Pack) createInfoBlock() error {
	data := make([]byte, 0, 4+8*len(p.infoLookup))
	data = binary.LittleEndian.AppendUint32(data, uint32(len(p.infoLookup)))
	for _, entry := range p.infoLookup {
		data = binary.LittleEndian.AppendUint32(data, entry.BlockID)
		data = binary.LittleEndian.AppendUint32(data, entry.Unknown)
	}
	return p.blocks.put(blockInfo, data)
}

func (p *Pack) createBodyBlock() error {
	data := make([]byte, 0, len(subMagic)+4+8*len(p.bodyLookup))
	data = append(data, subMagic...)
	data = binary.LittleEndian.AppendUint32(data, uint32(len(p.bodyLookup)))
	for _, entry := range p.bodyLookup {
		data = binary.LittleEndian.AppendUint32(data, entry.Offset)
		data = binary.LittleEndian.AppendUint32(data, entry.Unknown)
	}
	return p.blocks.put(blockBody, data)
}

// createAudioBlocks synthesizes the sample table and wave data blocks. Each
// header's Offset and Size are recomputed against the concatenated wave
// payload; all other header fields serialize as inserted.
func (p *Pack) createAudioBlocks() error {
	var wave bytes.Buffer
	var table bytes.Buffer
	table.Grow(4 + audioSampleHeaderSize*len(p.sampleHeaders))

	var prefix [4]byte
	binary.LittleEndian.PutUint16(prefix[:], uint16(len(p.sampleHeaders)))
	binary.LittleEndian.PutUint16(prefix[2:], p.audioUnknown)
	table.Write(prefix[:])

	for i := range p.sampleHeaders {
		header := p.sampleHeaders[i]
		header.Offset = uint32(wave.Len())
		header.Size = uint32(len(p.sounds[i]))
		if err := header.encode(&table); err != nil {
			return fmt.Errorf("sample %q: %w", header.NameString(), err)
		}
		wave.Write(p.sounds[i])
	}

	if uint64(wave.Len()) > p.maxBlockSize {
		return fmt.Errorf("%w: block %q is %d bytes", ErrBlockTooLarge, blockWaveData, wave.Len())
	}
	if err := p.blocks.put(blockAudioTable, table.Bytes()); err != nil {
		return err
	}
	return p.blocks.put(blockWaveData, wave.Bytes())
}

// writeFileAtomic writes data to a temp file then renames to target,
// ensuring readers never observe a partial pack file.
func writeFileAtomic(target string, data []byte) error {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, ".lionpack-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
