package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/protfeat/internal/hash"
)

// Type selects the compression algorithm.
type Type uint8

const (
	// None stores payloads raw.
	None Type = 0
	// LZ4 favors speed.
	LZ4 Type = 1
	// ZSTD favors ratio.
	ZSTD Type = 2
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// ParseType parses "none", "lz4" or "zstd".
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return ZSTD, nil
	}
	return None, fmt.Errorf("compress: unknown type %q", s)
}

// ErrCorrupt matches every decoding failure.
var ErrCorrupt = errors.New("compress: corrupt block")

const headerSize = 16

// Only keep compressed data that saves at least 10%.
const maxRatio = 0.9

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil)
}

// Encode frames data as a block compressed with t.
func Encode(data []byte, t Type) ([]byte, error) {
	var compressed []byte
	switch t {
	case None:
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, fmt.Errorf("compress: lz4: %w", err)
		}
		compressed = buf[:n]
	case ZSTD:
		enc, err := getZstdEncoder()
		if err != nil {
			return nil, fmt.Errorf("compress: zstd: %w", err)
		}
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("compress: unknown type %d", uint8(t))
	}

	payload := compressed
	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*maxRatio {
		payload = nil
	}

	out := make([]byte, headerSize, headerSize+max(len(payload), len(data)))
	out[0] = byte(t)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[8:], uint32(len(payload)))
	binary.LittleEndian.PutUint32(out[12:], hash.CRC32C(data))
	if payload == nil {
		return append(out, data...), nil
	}
	return append(out, payload...), nil
}

// Decode returns the payload of a block written by Encode.
func Decode(block []byte) ([]byte, error) {
	if len(block) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(block))
	}

	t := Type(block[0])
	rawSize := binary.LittleEndian.Uint32(block[4:])
	compressedSize := binary.LittleEndian.Uint32(block[8:])
	sum := binary.LittleEndian.Uint32(block[12:])
	body := block[headerSize:]

	var data []byte
	if compressedSize == 0 {
		if uint64(len(body)) != uint64(rawSize) {
			return nil, fmt.Errorf("%w: raw size %d, have %d bytes", ErrCorrupt, rawSize, len(body))
		}
		data = body
	} else {
		if uint64(len(body)) != uint64(compressedSize) {
			return nil, fmt.Errorf("%w: compressed size %d, have %d bytes", ErrCorrupt, compressedSize, len(body))
		}
		var err error
		data, err = decompress(t, body, int(rawSize))
		if err != nil {
			return nil, err
		}
	}

	if err := hash.Verify(data, sum); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return data, nil
}

func decompress(t Type, body []byte, rawSize int) ([]byte, error) {
	switch t {
	case LZ4:
		out := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %w", ErrCorrupt, err)
		}
		if n != rawSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, nil
	case ZSTD:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, fmt.Errorf("compress: zstd: %w", err)
		}
		defer zstdDecoderPool.Put(dec)

		out, err := dec.DecodeAll(body, make([]byte, 0, rawSize))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
		if len(out) != rawSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %d", ErrCorrupt, uint8(t))
	}
}
