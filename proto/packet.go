// Package proto defines the control-plane wire format: HELLO and LSA
// packets, JSON-encoded, exchanged over UDP on config.ControlPort.
package proto

import (
	"encoding/json"
	"fmt"
)

// Type discriminates a decoded packet's kind.
type Type string

const (
	TypeHello Type = "HELLO"
	TypeLSA   Type = "LSA"
)

// Envelope is only used to sniff the "type" field before decoding the
// full packet.
type Envelope struct {
	Type Type `json:"type"`
}

// Hello is the periodic beacon used to discover and refresh neighbors.
type Hello struct {
	Type           Type     `json:"type"`
	Origin         string   `json:"origin"`
	Timestamp      float64  `json:"timestamp"`
	AdvertisedIP   string   `json:"advertised_ip"`
	KnownNeighbors []string `json:"known_neighbors"`
}

// LSA announces an origin's current view of its adjacencies.
type LSA struct {
	Type         Type           `json:"type"`
	Origin       string         `json:"origin"`
	Timestamp    float64        `json:"timestamp"`
	Sequence     int            `json:"sequence"`
	AdvertisedIP string         `json:"advertised_ip"`
	Addresses    []string       `json:"addresses"`
	Links        map[string]int `json:"links"`
}

// Sniff reports the packet's type without fully decoding it. Malformed
// JSON or a missing/unknown type field returns an error; the caller
// logs and drops the datagram rather than propagating.
func Sniff(data []byte) (Type, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", fmt.Errorf("decode envelope: %w", err)
	}
	switch env.Type {
	case TypeHello, TypeLSA:
		return env.Type, nil
	default:
		return "", fmt.Errorf("unknown packet type %q", env.Type)
	}
}

// DecodeHello parses data as a HelloPacket, validating required fields
// are present. Unknown fields are ignored by encoding/json already.
func DecodeHello(data []byte) (*Hello, error) {
	var h Hello
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("decode HELLO: %w", err)
	}
	if h.Origin == "" {
		return nil, fmt.Errorf("HELLO missing origin")
	}
	if h.AdvertisedIP == "" {
		return nil, fmt.Errorf("HELLO missing advertised_ip")
	}
	return &h, nil
}

// DecodeLSA parses data as an LSAPacket, validating required fields.
func DecodeLSA(data []byte) (*LSA, error) {
	var l LSA
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode LSA: %w", err)
	}
	if l.Origin == "" {
		return nil, fmt.Errorf("LSA missing origin")
	}
	if l.Sequence < 0 {
		return nil, fmt.Errorf("LSA has negative sequence %d", l.Sequence)
	}
	if l.AdvertisedIP == "" {
		return nil, fmt.Errorf("LSA missing advertised_ip")
	}
	return &l, nil
}

// EncodeHello serializes h. The encoded size is not checked against
// config.MaxDatagramBytes, here or by the caller.
func EncodeHello(h *Hello) ([]byte, error) {
	h.Type = TypeHello
	return json.Marshal(h)
}

// EncodeLSA serializes l.
func EncodeLSA(l *LSA) ([]byte, error) {
	l.Type = TypeLSA
	return json.Marshal(l)
}
