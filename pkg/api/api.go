// Package api defines the Connect RPC surface of PokerPal: procedure names,
// request/response messages and handler/client constructors.
//
// Messages are plain Go structs carried by a JSON codec, so the schema lives
// in this package instead of a .proto file and no code generation is
// involved. Clients talk standard Connect unary POSTs with
// Content-Type application/json.
package api

import (
	"encoding/json"
)

// jsonCodec implements connect.Codec over encoding/json. Registering it
// under the name "json" makes Connect serve application/json requests with
// plain structs.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (jsonCodec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		// Empty body means an empty message.
		return nil
	}
	return json.Unmarshal(data, message)
}
