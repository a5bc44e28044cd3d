package ucs

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CallContentSubtype is the gRPC content-subtype the client invokes with.
// The service side runs proto-JSON transcoding, so the hand-maintained wire
// structs here bind to the same messages the proto schema defines without
// this module carrying generated stubs.
const CallContentSubtype = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %T: %w", v, err)
	}
	return nil
}

func (jsonCodec) Name() string {
	return CallContentSubtype
}
