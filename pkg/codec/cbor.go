package codec

import (
	"github.com/fxamacker/cbor/v2"
)

// CBOR encodes values with RFC 8949 core deterministic encoding. Generic
// maps decode as map[any]any, so non-string map keys round-trip too.
var CBOR Format = newCBORFormat()

type cborFormat struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func newCBORFormat() cborFormat {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
	return cborFormat{enc: enc, dec: dec}
}

func (cborFormat) Name() string { return "cbor" }

func (f cborFormat) Marshal(v any) ([]byte, error) {
	return f.enc.Marshal(v)
}

func (f cborFormat) Unmarshal(data []byte, v any) error {
	return f.dec.Unmarshal(data, v)
}

func (f cborFormat) UnmarshalGeneric(data []byte) (Value, error) {
	var out any
	if err := f.dec.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
