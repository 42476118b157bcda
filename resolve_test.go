package lionpack

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveInfo(t *testing.T) {
	t.Parallel()

	t.Run("decodes lookup entries", func(t *testing.T) {
		t.Parallel()

		want := []InfoLookupEntry{
			{BlockID: 0x2a, Unknown: 1},
			{BlockID: 0xdeadbeef, Unknown: 0},
		}
		entries, err := resolveInfo(buildInfoBlock(t, want...))
		require.NoError(t, err)
		assert.Equal(t, want, entries)
	})

	t.Run("rejects block too small for count", func(t *testing.T) {
		t.Parallel()

		_, err := resolveInfo([]byte{1, 0})
		require.ErrorIs(t, err, ErrTruncatedBlock)
	})

	t.Run("rejects count past end of block", func(t *testing.T) {
		t.Parallel()

		data := buildInfoBlock(t, InfoLookupEntry{BlockID: 1})
		binary.LittleEndian.PutUint32(data, 5)

		_, err := resolveInfo(data)
		require.ErrorIs(t, err, ErrTruncatedBlock)
	})
}

func TestResolveBody(t *testing.T) {
	t.Parallel()

	buildBody := func(entries ...BodyLookupEntry) []byte {
		data := []byte(subMagic)
		data = binary.LittleEndian.AppendUint32(data, uint32(len(entries)))
		for _, e := range entries {
			data = binary.LittleEndian.AppendUint32(data, e.Offset)
			data = binary.LittleEndian.AppendUint32(data, e.Unknown)
		}
		return data
	}

	t.Run("decodes lookup entries", func(t *testing.T) {
		t.Parallel()

		want := []BodyLookupEntry{{Offset: 16, Unknown: 3}, {Offset: 200, Unknown: 0}}
		entries, err := resolveBody(buildBody(want...))
		require.NoError(t, err)
		assert.Equal(t, want, entries)
	})

	t.Run("rejects bad sub-magic", func(t *testing.T) {
		t.Parallel()

		data := buildBody(BodyLookupEntry{Offset: 16})
		copy(data, "XXXX")

		_, err := resolveBody(data)
		require.ErrorIs(t, err, ErrBadSubMagic)
	})

	t.Run("rejects count past end of block", func(t *testing.T) {
		t.Parallel()

		data := buildBody(BodyLookupEntry{Offset: 16})
		binary.LittleEndian.PutUint32(data[len(subMagic):], 9)

		_, err := resolveBody(data)
		require.ErrorIs(t, err, ErrTruncatedBlock)
	})
}

func TestResolveMeshOffsets(t *testing.T) {
	t.Parallel()

	t.Run("decodes offset table", func(t *testing.T) {
		t.Parallel()

		data := buildMeshBlock(t, []byte("mesh-one"), []byte("two"))
		offsets, err := resolveMeshOffsets(data)
		require.NoError(t, err)
		assert.Equal(t, []uint32{8, 16}, offsets)
	})

	t.Run("rejects bad sub-magic", func(t *testing.T) {
		t.Parallel()

		data := buildMeshBlock(t, []byte("mesh"))
		copy(data, "NOPE")

		_, err := resolveMeshOffsets(data)
		require.ErrorIs(t, err, ErrBadSubMagic)
	})

	t.Run("rejects count past end of block", func(t *testing.T) {
		t.Parallel()

		data := buildMeshBlock(t)
		binary.LittleEndian.PutUint32(data[len(subMagic):], 100)

		_, err := resolveMeshOffsets(data)
		require.ErrorIs(t, err, ErrTruncatedBlock)
	})
}

func TestResolveAudioTable(t *testing.T) {
	t.Parallel()

	t.Run("decodes sample headers", func(t *testing.T) {
		t.Parallel()

		var a, b AudioSampleHeader
		a.SetName("thunder.wav")
		a.SampleRate = 22050
		a.Size = 128
		b.SetName("rain.wav")
		b.Offset = 128
		b.Size = 64

		unknown, headers, err := resolveAudioTable(buildAudioTable(t, 7, a, b))
		require.NoError(t, err)
		assert.Equal(t, uint16(7), unknown)
		require.Len(t, headers, 2)
		assert.Equal(t, "thunder.wav", headers[0].NameString())
		assert.Equal(t, uint32(22050), headers[0].SampleRate)
		assert.Equal(t, "rain.wav", headers[1].NameString())
		assert.Equal(t, uint32(128), headers[1].Offset)
	})

	t.Run("rejects empty table", func(t *testing.T) {
		t.Parallel()

		_, _, err := resolveAudioTable(buildAudioTable(t, 0))
		require.ErrorIs(t, err, ErrEmptyAudioTable)
	})

	t.Run("rejects size not matching count", func(t *testing.T) {
		t.Parallel()

		var h AudioSampleHeader
		data := buildAudioTable(t, 0, h)
		binary.LittleEndian.PutUint16(data, 2)

		_, _, err := resolveAudioTable(data)
		require.ErrorIs(t, err, ErrSizeMismatch)

		_, _, err = resolveAudioTable(data[:len(data)-1])
		require.ErrorIs(t, err, ErrSizeMismatch)
	})
}
