package serializer

import (
	"github.com/hyp3rd/ewrap"
	"github.com/ugorji/go/codec"
)

// cborHandle treats time.Time as an ordinary type so it goes through
// time.Time.MarshalBinary. The builtin CBOR time tags round to microseconds.
var cborHandle = &codec.CborHandle{
	BasicHandle: codec.BasicHandle{TimeNotBuiltin: true},
}

type cborCodec struct{}

func (cborCodec) Marshal(v any) ([]byte, error) {
	var data []byte

	err := codec.NewEncoderBytes(&data, cborHandle).Encode(v)
	if err != nil {
		return nil, ewrap.Wrap(err, "encoding cbor")
	}

	return data, nil
}

func (cborCodec) Unmarshal(data []byte, v any) error {
	err := codec.NewDecoderBytes(data, cborHandle).Decode(v)
	if err != nil {
		return ewrap.Wrap(err, "decoding cbor")
	}

	return nil
}
