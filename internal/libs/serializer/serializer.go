// Package serializer encodes benchmark results for the Redis result store.
//
// Codecs are stateless and looked up by name. The set is fixed: json (goccy/go-json),
// msgpack (shamaton/msgpack) and cbor (ugorji/go/codec). Every codec must round-trip a
// types.Result exactly, including the nanoseconds of its start time.
package serializer

import (
	"maps"
	"slices"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/jitterbench/internal/sentinel"
)

// Codec names accepted by New.
const (
	JSON    = "json"
	Msgpack = "msgpack"
	CBOR    = "cbor"
)

// ISerializer is the interface that wraps the basic serializer methods.
type ISerializer interface {
	// Marshal serializes the given value into a byte slice.
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes the given byte slice into the given value.
	Unmarshal(data []byte, v any) error
}

var codecs = map[string]ISerializer{
	JSON:    jsonCodec{},
	Msgpack: msgpackCodec{},
	CBOR:    cborCodec{},
}

// Names returns the accepted codec names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(codecs))
}

// New returns the codec registered under name.
func New(name string) (ISerializer, error) {
	if name == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "serializer name")
	}

	codec, ok := codecs[name]
	if !ok {
		return nil, ewrap.Wrapf(sentinel.ErrSerializerNotFound, "%q, want one of %s", name, strings.Join(Names(), ", "))
	}

	return codec, nil
}
