package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec turns envelopes into frame payloads and back. Clients send
// {type, data}; the server sends {id, type, data}.
type Codec interface {
	Name() string
	EncodeServer(id uint32, msg Message) ([]byte, error)
	DecodeServer(data []byte) (uint32, Message, error)
	EncodeClient(msg Message) ([]byte, error)
	DecodeClient(data []byte) (Message, error)
}

// NewCodec returns the codec called name, "json" or "msgpack".
func NewCodec(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSONCodec{}, nil
	case "msgpack":
		return MsgpackCodec{}, nil
	}
	return nil, fmt.Errorf("protocol: unknown codec %q", name)
}

type jsonClientEnvelope struct {
	Type Type            `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type jsonServerEnvelope struct {
	ID   uint32          `json:"id"`
	Type Type            `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// JSONCodec is the default text codec.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) EncodeServer(id uint32, msg Message) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonServerEnvelope{ID: id, Type: msg.Type(), Data: data})
}

func (JSONCodec) DecodeServer(data []byte) (uint32, Message, error) {
	var env jsonServerEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return 0, nil, fmt.Errorf("protocol: bad envelope: %w", err)
	}
	msg, err := decode(env.Type, env.Data, json.Unmarshal)
	return env.ID, msg, err
}

func (JSONCodec) EncodeClient(msg Message) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonClientEnvelope{Type: msg.Type(), Data: data})
}

func (JSONCodec) DecodeClient(data []byte) (Message, error) {
	var env jsonClientEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("protocol: bad envelope: %w", err)
	}
	if !IsClientType(env.Type) {
		return nil, fmt.Errorf("%w: %q", ErrNotClientMessage, env.Type)
	}
	return decode(env.Type, env.Data, json.Unmarshal)
}

type msgpackClientEnvelope struct {
	Type Type               `msgpack:"type"`
	Data msgpack.RawMessage `msgpack:"data"`
}

type msgpackServerEnvelope struct {
	ID   uint32             `msgpack:"id"`
	Type Type               `msgpack:"type"`
	Data msgpack.RawMessage `msgpack:"data"`
}

// MsgpackCodec is the compact binary codec.
type MsgpackCodec struct{}

func (MsgpackCodec) Name() string { return "msgpack" }

func (MsgpackCodec) EncodeServer(id uint32, msg Message) ([]byte, error) {
	data, err := msgpack.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(&msgpackServerEnvelope{ID: id, Type: msg.Type(), Data: data})
}

func (MsgpackCodec) DecodeServer(data []byte) (uint32, Message, error) {
	var env msgpackServerEnvelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return 0, nil, fmt.Errorf("protocol: bad envelope: %w", err)
	}
	msg, err := decode(env.Type, env.Data, msgpack.Unmarshal)
	return env.ID, msg, err
}

func (MsgpackCodec) EncodeClient(msg Message) ([]byte, error) {
	data, err := msgpack.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(&msgpackClientEnvelope{Type: msg.Type(), Data: data})
}

func (MsgpackCodec) DecodeClient(data []byte) (Message, error) {
	var env msgpackClientEnvelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("protocol: bad envelope: %w", err)
	}
	if !IsClientType(env.Type) {
		return nil, fmt.Errorf("%w: %q", ErrNotClientMessage, env.Type)
	}
	return decode(env.Type, env.Data, msgpack.Unmarshal)
}
