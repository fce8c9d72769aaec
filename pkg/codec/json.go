package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSON encodes values with encoding/json. Generic numbers decode as
// json.Number so integers wider than 53 bits survive a round trip.
var JSON Format = jsonFormat{}

type jsonFormat struct{}

func (jsonFormat) Name() string { return "json" }

func (jsonFormat) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonFormat) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonFormat) UnmarshalGeneric(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return out, nil
}
