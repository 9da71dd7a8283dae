// Package jsonenc implements game.Encoder with JSON payloads, matching
// the encoding the HTTP API already speaks.
package jsonenc

import (
	"encoding/json"

	"github.com/mazehunt/mazehunt-api/game"
)

var _ game.Encoder = &JSON{}

// JSON is a stateless game.Encoder.
type JSON struct{}

// MarshalState implements game.Encoder.
func (j *JSON) MarshalState(s *game.State) ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalState implements game.Encoder.
func (j *JSON) UnmarshalState(b []byte) (*game.State, error) {
	s := &game.State{}
	err := json.Unmarshal(b, s)
	return s, err
}

// MarshalInput implements game.Encoder.
func (j *JSON) MarshalInput(in *game.Input) ([]byte, error) {
	return json.Marshal(in)
}

// UnmarshalInput implements game.Encoder.
func (j *JSON) UnmarshalInput(b []byte) (*game.Input, error) {
	in := &game.Input{}
	err := json.Unmarshal(b, in)
	return in, err
}
