package connection

import "encoding/json"

type NoPayload bool

// Message is the envelope of every frame sent to spectators.
type Message[T any] struct {
	Code    uint8    `json:"code"`
	Payload T        `json:"payload,omitempty"`
	Error   *RespErr `json:"error,omitempty"`
}

func NewMessage[T any](code uint8) Message[T] {
	return Message[T]{Code: code}
}

func NewMessageWithPayload[T any](code uint8, payload T) Message[T] {
	return Message[T]{Code: code, Payload: payload}
}

func (m *Message[T]) AddError(errorDetails, message string) {
	m.Error = NewRespErr(errorDetails, message)
}

// Encode marshals the message once so it can be fanned out to many
// connections as a prepared text frame.
func (m Message[T]) Encode() ([]byte, error) {
	return json.Marshal(m)
}
