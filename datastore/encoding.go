package datastore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/binsparse/dtype"
	"github.com/hupe1980/binsparse/internal/conv"
)

const (
	// arrayMagic identifies array files/objects (ASCII "BSAR").
	arrayMagic = 0x42534152
	// arrayVersion is the current array encoding version (v1.0.0).
	arrayVersion = 0x00010000
)

var (
	ErrInvalidMagic   = errors.New("datastore: invalid magic number")
	ErrInvalidVersion = errors.New("datastore: unsupported version")
)

// arrayHeader is the 32-byte header at the start of every encoded array.
// All fields are little-endian.
type arrayHeader struct {
	Magic       uint32
	Version     uint32
	TypeCode    uint8
	Compression uint8
	Padding     [2]byte
	Count       uint32
	RawSize     uint64
	Reserved    [8]byte
}

// EncodeArray serializes an array with the given compression preference.
func EncodeArray(arr Array, c Compression) ([]byte, error) {
	if !arr.Tag.Valid() {
		return nil, fmt.Errorf("datastore: invalid type code %d", uint8(arr.Tag))
	}
	count, err := conv.IntToUint64(arr.Count)
	if err != nil {
		return nil, err
	}
	count32, err := conv.Uint64ToUint32(count)
	if err != nil {
		return nil, err
	}

	payload, used, err := compress(arr.Data, c)
	if err != nil {
		return nil, err
	}

	header := arrayHeader{
		Magic:       arrayMagic,
		Version:     arrayVersion,
		TypeCode:    uint8(arr.Tag),
		Compression: uint8(used),
		Count:       count32,
		RawSize:     uint64(len(arr.Data)),
	}

	var buf bytes.Buffer
	buf.Grow(binary.Size(header) + len(payload))
	if err := binary.Write(&buf, binary.LittleEndian, header); err != nil {
		return nil, err
	}
	if _, err := buf.Write(payload); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeArray parses an encoded array. The returned payload is freshly
// allocated; data may be unmapped or reused after the call.
func DecodeArray(data []byte) (Array, error) {
	var header arrayHeader
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return Array{}, err
	}
	if header.Magic != arrayMagic {
		return Array{}, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, header.Magic)
	}
	if header.Version != arrayVersion {
		return Array{}, fmt.Errorf("%w: got 0x%08x", ErrInvalidVersion, header.Version)
	}

	tag := dtype.TypeCode(header.TypeCode)
	if !tag.Valid() {
		return Array{}, fmt.Errorf("datastore: invalid type code %d", header.TypeCode)
	}

	rawSize, err := conv.Uint64ToInt(header.RawSize)
	if err != nil {
		return Array{}, err
	}
	payload := data[len(data)-r.Len():]
	raw, err := decompress(payload, Compression(header.Compression), rawSize)
	if err != nil {
		return Array{}, err
	}

	return Array{
		Tag:   tag,
		Count: int(header.Count),
		Data:  raw,
	}, nil
}
