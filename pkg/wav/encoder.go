package wav

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// HeaderSize is the length of the RIFF/WAVE header preceding the samples.
const HeaderSize = 44

// Header mirrors the 44-byte header field by field.
type Header struct {
	RIFF          [4]byte
	ChunkSize     uint32 // data bytes + HeaderSize
	WAVE          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	Format        uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

// NewHeader describes sampleCount 16-bit PCM samples at SampleRate.
func NewHeader(sampleCount, channels int) Header {
	dataSize := uint32(sampleCount * 2)
	return Header{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     dataSize + HeaderSize,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		Format:        1,
		Channels:      uint16(channels),
		SampleRate:    SampleRate,
		ByteRate:      uint32(SampleRate * 2 * channels),
		BlockAlign:    uint16(2 * channels),
		BitsPerSample: 16,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
}

var ErrInvalidHeader = errors.New("wav: invalid header")

// Encode writes the header followed by little-endian samples.
func Encode(w io.Writer, samples []int16, channels int) error {
	if channels < 1 {
		return fmt.Errorf("wav: invalid channel count %d", channels)
	}
	bw := bufio.NewWriter(w)
	header := NewHeader(len(samples), channels)
	if err := binary.Write(bw, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("wav: write header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("wav: write samples: %w", err)
	}
	return bw.Flush()
}

// DecodeHeader reads and validates the 44-byte header.
func DecodeHeader(r io.Reader) (Header, error) {
	var header Header
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return Header{}, fmt.Errorf("wav: read header: %w", err)
	}
	switch {
	case string(header.RIFF[:]) != "RIFF",
		string(header.WAVE[:]) != "WAVE",
		string(header.Fmt[:]) != "fmt ",
		string(header.Data[:]) != "data":
		return Header{}, fmt.Errorf("%w: bad chunk tags", ErrInvalidHeader)
	case header.Format != 1 || header.BitsPerSample != 16:
		return Header{}, fmt.Errorf("%w: only 16-bit PCM is supported", ErrInvalidHeader)
	case header.DataSize%2 != 0:
		return Header{}, fmt.Errorf("%w: odd data size %d", ErrInvalidHeader, header.DataSize)
	case uint64(header.ChunkSize) != uint64(header.DataSize)+HeaderSize:
		return Header{}, fmt.Errorf("%w: chunk size %d does not match data size %d", ErrInvalidHeader, header.ChunkSize, header.DataSize)
	}
	return header, nil
}

// Decode reads a complete file produced by Encode.
func Decode(r io.Reader) (Header, []int16, error) {
	header, err := DecodeHeader(r)
	if err != nil {
		return Header{}, nil, err
	}
	// Allocation is bounded by the bytes actually present.
	data, err := io.ReadAll(io.LimitReader(r, int64(header.DataSize)))
	if err != nil {
		return Header{}, nil, fmt.Errorf("wav: read samples: %w", err)
	}
	if len(data) != int(header.DataSize) {
		return Header{}, nil, fmt.Errorf("wav: read samples: %w: got %d of %d bytes", io.ErrUnexpectedEOF, len(data), header.DataSize)
	}
	samples := make([]int16, len(data)/2)
	for idx := range samples {
		samples[idx] = int16(binary.LittleEndian.Uint16(data[2*idx:]))
	}
	return header, samples, nil
}

// WriteFile encodes the buffer's samples to path.
func (b *Buffer) WriteFile(path string, channels int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("wav: %w", cerr)
		}
	}()
	return Encode(f, b.samples, channels)
}
