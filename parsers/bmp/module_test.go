package bmp

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/parsekit/internal/engine"
	"github.com/vk/parsekit/internal/field"
	"github.com/vk/parsekit/internal/handlers"
	"github.com/vk/parsekit/internal/registry"
	"github.com/vk/parsekit/internal/source"
	"github.com/vk/parsekit/internal/tree"
)

// makeBMP synthesizes the 54 header bytes of a BI_RGB bitmap.
func makeBMP(width, height int32, bpp uint16) []byte {
	buf := make([]byte, fileHeaderSize+infoHeaderSize)
	buf[0], buf[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(buf[2:6], uint32(len(buf)))
	binary.LittleEndian.PutUint32(buf[10:14], uint32(len(buf)))

	info := buf[fileHeaderSize:]
	binary.LittleEndian.PutUint32(info[0:4], infoHeaderSize)
	binary.LittleEndian.PutUint32(info[4:8], uint32(width))
	binary.LittleEndian.PutUint32(info[8:12], uint32(height))
	binary.LittleEndian.PutUint16(info[12:14], 1)
	binary.LittleEndian.PutUint16(info[14:16], bpp)
	return buf
}

func buildBMPRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.Build("bmp", nil, []*field.Descriptor{
		field.New(0, "file_header"),
		field.New(1, "info_header", field.WithDependencies("file_header")),
		field.New(2, "dimensions", field.WithDependencies("info_header")),
	})
	require.NoError(t, err)
	reg.BindHandler("file_header", ParseFileHeader)
	reg.BindHandler("info_header", ParseInfoHeader)
	reg.BindHandler("dimensions", ParseDimensions)
	return reg
}

func TestModuleRegistersHandlers(t *testing.T) {
	hs := handlers.New()
	(&Module{}).Register(hs)

	for _, name := range []string{"ParseFileHeader", "ParseInfoHeader", "ParseDimensions"} {
		_, found := hs.Lookup(name)
		assert.True(t, found, name)
	}
}

func TestParseBMPHeaders(t *testing.T) {
	data := makeBMP(800, 600, 24)
	p := engine.New(buildBMPRegistry(t), source.Bytes(data))

	_, err := p.Parse(context.Background())
	require.NoError(t, err)
	require.Empty(t, p.Failures())

	fileHeader, _ := p.FieldValue("file_header")
	fh := fileHeader.(*tree.Map)
	sig, _ := fh.Get("Signature")
	assert.Equal(t, "BM", sig)
	size, _ := fh.Get("FileSize")
	assert.Equal(t, uint32(54), size)

	dimensions, _ := p.FieldValue("dimensions")
	dims := dimensions.(*tree.Map)
	width, _ := dims.Get("Width")
	assert.Equal(t, int32(800), width)
	height, _ := dims.Get("Height")
	assert.Equal(t, int32(600), height)
	topDown, _ := dims.Get("TopDown")
	assert.Equal(t, false, topDown)
	bpp, _ := dims.Get("BitsPerPixel")
	assert.Equal(t, uint16(24), bpp)
}

func TestParseBMPTopDown(t *testing.T) {
	data := makeBMP(320, -240, 32)
	p := engine.New(buildBMPRegistry(t), source.Bytes(data))

	_, err := p.Parse(context.Background())
	require.NoError(t, err)
	require.Empty(t, p.Failures())

	dimensions, _ := p.FieldValue("dimensions")
	dims := dimensions.(*tree.Map)
	height, _ := dims.Get("Height")
	assert.Equal(t, int32(240), height)
	topDown, _ := dims.Get("TopDown")
	assert.Equal(t, true, topDown)
}

func TestParseBMPBadInput(t *testing.T) {
	t.Run("wrong signature", func(t *testing.T) {
		data := makeBMP(1, 1, 24)
		data[0] = 'X'
		p := engine.New(buildBMPRegistry(t), source.Bytes(data))

		_, err := p.Parse(context.Background())
		require.NoError(t, err)
		// Every field fails: the first directly, the rest through their
		// dependency chains.
		assert.Len(t, p.Failures(), 3)
		assert.Equal(t, 0, p.Result().Len())
	})

	t.Run("truncated info header", func(t *testing.T) {
		data := makeBMP(1, 1, 24)[:20]
		p := engine.New(buildBMPRegistry(t), source.Bytes(data))

		_, err := p.Parse(context.Background())
		require.NoError(t, err)

		require.Len(t, p.Failures(), 2)
		assert.Equal(t, "info_header", p.Failures()[0].Field)
		assert.Equal(t, "dimensions", p.Failures()[1].Field)

		// The file header decoded fine and stays resolved.
		assert.Equal(t, []string{"file_header"}, p.Result().Keys())
	})

	t.Run("raw keys are stripped from sanitized output", func(t *testing.T) {
		data := makeBMP(16, 16, 8)
		p := engine.New(buildBMPRegistry(t), source.Bytes(data))
		_, err := p.Parse(context.Background())
		require.NoError(t, err)

		clean := tree.Sanitize(p.Result(), false).(*tree.Map)
		fileHeader, _ := clean.Get("file_header")
		fh := fileHeader.(*tree.Map)
		_, present := fh.Get("RawSignature")
		assert.False(t, present)
		_, present = fh.Get("Signature")
		assert.True(t, present)
	})
}
