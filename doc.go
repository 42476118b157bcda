// Package lionpack reads and writes Lionhead pack files, the "LiOnHeAd"
// container multiplexing named binary blocks: L3D meshes, ANM animation
// metadata, DDS textures, and audio sample tables with their waveform data.
//
// Block payloads are stored verbatim; this package decodes the container
// framing and the per-block sub-formats into typed collections and leaves
// interpretation of mesh, animation, texture, and sample bytes to the
// consumer.
//
// The container layout:
//
//	File        := Magic(8="LiOnHeAd") Block*
//	Block       := Name(32, NUL-padded ASCII) Size(u32 LE) Payload(Size bytes)
//
// Known block sub-formats:
//
//	MESHES      := SubMagic(4="MKJC") MeshCount(u32) Offset(u32)*MeshCount MeshBytes...
//	Body        := SubMagic(4="MKJC") AnimCount(u32) {Offset(u32) Unknown(u32)}*AnimCount
//	INFO        := TextureCount(u32) {BlockId(u32) Unknown(u32)}*TextureCount
//	AudioTable  := SampleCount(u16) Unknown(u16) AudioSampleHeader(640)*SampleCount
//	TextureBlk  := Size(u32) BlockId(u32) Type(u32) DdsFileSize(u32) DdsBytes(DdsFileSize)
//
// Texture blocks are keyed by the lowercase, unpadded hexadecimal string of
// their block id. Animation metadata lives in blocks named "Julien<index>".
// Waveforms live in a block named "LHAudioWaveData". The DDS streams inside
// texture blocks are stored without their leading "DDS " four-character
// magic.
//
// # Reading
//
//	p := lionpack.New()
//	if err := p.Open("allmeshes.g3d"); err != nil {
//	    return err
//	}
//	for i, mesh := range p.Meshes() {
//	    // mesh is the raw L3D byte range for mesh i
//	}
//
// # Authoring
//
//	p := lionpack.New()
//	if err := p.InsertMesh(l3dBytes); err != nil {
//	    return err
//	}
//	if err := p.Write("out.g3d"); err != nil {
//	    return err
//	}
//
// A Pack instance is single-use: one load pass or one authoring pass
// followed by one write. Instances are not safe for concurrent use; open
// one Pack per file and per goroutine.
package lionpack
