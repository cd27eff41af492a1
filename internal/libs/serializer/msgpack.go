package serializer

import (
	"github.com/shamaton/msgpack/v2"

	"github.com/hyp3rd/ewrap"
)

// msgpackCodec is the compact default of the Redis store. Time values use the
// msgpack timestamp extension, which carries nanoseconds.
type msgpackCodec struct{}

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, ewrap.Wrap(err, "encoding msgpack")
	}

	return data, nil
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	err := msgpack.Unmarshal(data, v)
	if err != nil {
		return ewrap.Wrap(err, "decoding msgpack")
	}

	return nil
}
