package handler

import (
	"encoding/json"

	"google.golang.org/protobuf/proto"
)

// Codec encodes service messages as JSON. Protobuf messages, such as those of
// the standard health service sharing the server, keep the binary encoding.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return proto.Marshal(m)
	}
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return proto.Unmarshal(data, m)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (Codec) Name() string { return "json" }
