// Package bmp decodes Windows bitmap headers. It is the reference grammar
// for the engine: three fields, a linear dependency chain, and a raw-prefixed
// key that the sanitizer strips from external output.
package bmp

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vk/parsekit/internal/handlers"
	"github.com/vk/parsekit/internal/registry"
	"github.com/vk/parsekit/internal/tree"
)

// fileHeaderSize and infoHeaderSize are the fixed sizes of the
// BITMAPFILEHEADER and BITMAPINFOHEADER structures.
const (
	fileHeaderSize = 14
	infoHeaderSize = 40
)

// Module implements the handlers.Module interface for this package.
type Module struct{}

// Register registers the decoding routines with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	h.Register("ParseFileHeader", ParseFileHeader)
	h.Register("ParseInfoHeader", ParseInfoHeader)
	h.Register("ParseDimensions", ParseDimensions)
}

// ParseFileHeader decodes the 14-byte BITMAPFILEHEADER at the start of the
// stream.
func ParseFileHeader(ctx context.Context, inst registry.Instance, stream io.ReadSeeker, args map[string]any) (any, error) {
	if _, err := stream.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, fileHeaderSize)
	if _, err := io.ReadFull(stream, buf); err != nil {
		return nil, fmt.Errorf("short file header: %w", err)
	}
	if buf[0] != 'B' || buf[1] != 'M' {
		return nil, fmt.Errorf("bad signature %q, want \"BM\"", buf[:2])
	}
	return tree.MapOf(
		"RawSignature", append([]byte(nil), buf[:2]...),
		"Signature", string(buf[:2]),
		"FileSize", binary.LittleEndian.Uint32(buf[2:6]),
		"PixelDataOffset", binary.LittleEndian.Uint32(buf[10:14]),
	), nil
}

// ParseInfoHeader decodes the 40-byte BITMAPINFOHEADER that follows the file
// header.
func ParseInfoHeader(ctx context.Context, inst registry.Instance, stream io.ReadSeeker, args map[string]any) (any, error) {
	if _, err := stream.Seek(fileHeaderSize, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, infoHeaderSize)
	if _, err := io.ReadFull(stream, buf); err != nil {
		return nil, fmt.Errorf("short info header: %w", err)
	}
	headerSize := binary.LittleEndian.Uint32(buf[0:4])
	if headerSize < infoHeaderSize {
		return nil, fmt.Errorf("unsupported info header size %d", headerSize)
	}
	return tree.MapOf(
		"RawHeaderSize", headerSize,
		"Width", int32(binary.LittleEndian.Uint32(buf[4:8])),
		"Height", int32(binary.LittleEndian.Uint32(buf[8:12])),
		"Planes", binary.LittleEndian.Uint16(buf[12:14]),
		"BitsPerPixel", binary.LittleEndian.Uint16(buf[14:16]),
		"Compression", binary.LittleEndian.Uint32(buf[16:20]),
		"ImageSize", binary.LittleEndian.Uint32(buf[20:24]),
	), nil
}

// ParseDimensions derives the display geometry from the already-resolved
// info header. Height is stored negative for top-down bitmaps.
func ParseDimensions(ctx context.Context, inst registry.Instance, stream io.ReadSeeker, args map[string]any) (any, error) {
	raw, err := inst.Field("info_header")
	if err != nil {
		return nil, err
	}
	info, ok := raw.(*tree.Map)
	if !ok {
		return nil, fmt.Errorf("info_header resolved to %T, want map node", raw)
	}

	width, _ := info.Get("Width")
	height, _ := info.Get("Height")
	bpp, _ := info.Get("BitsPerPixel")

	h := height.(int32)
	topDown := h < 0
	if topDown {
		h = -h
	}
	return tree.MapOf(
		"Width", width.(int32),
		"Height", h,
		"TopDown", topDown,
		"BitsPerPixel", bpp.(uint16),
	), nil
}
