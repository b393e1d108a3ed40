package message

import (
	"errors"
	"maps"
	"sync"
)

type Type byte

const (
	Request  Type = 0x00
	Notify   Type = 0x01
	Response Type = 0x02
	Push     Type = 0x03
)

var ErrTruncated = errors.New("message: truncated data")

// Message is the routed envelope carried inside a Data packet.
// On the wire it is the type byte, the 7-bit varint message id and the
// raw payload. The route is resolved from the registered dictionary.
type Message struct {
	Type  Type
	Route string
	ID    uint64
	Data  []byte
}

var (
	dictMu sync.RWMutex
	dict   = map[uint64]string{}
)

// SetRouteDict merges id->route mappings into the dictionary.
// Components register their handler routes at startup.
func SetRouteDict(newdict map[uint64]string) {
	dictMu.Lock()
	maps.Copy(dict, newdict)
	dictMu.Unlock()
}

// RouteOf returns the route registered for a message id.
func RouteOf(id uint64) (string, bool) {
	dictMu.RLock()
	defer dictMu.RUnlock()
	r, ok := dict[id]
	return r, ok
}

func Decode(data []byte) (*Message, error) {
	if len(data) < 2 {
		return nil, ErrTruncated
	}
	m := &Message{Type: Type(data[0])}
	if m.Type > Push {
		return nil, errors.New("message: unknown message type")
	}

	offset := 1
	for shift := uint(0); ; shift += 7 {
		if offset >= len(data) {
			return nil, ErrTruncated
		}
		b := data[offset]
		offset++
		m.ID |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			break
		}
	}
	m.Data = data[offset:]
	m.Route, _ = RouteOf(m.ID)
	return m, nil
}

func Encode(m *Message) []byte {
	header := []byte{byte(m.Type)}
	id := m.ID
	for {
		b := byte(id & 0x7F)
		id >>= 7
		if id != 0 {
			header = append(header, b|0x80)
		} else {
			header = append(header, b)
			break
		}
	}
	return append(header, m.Data...)
}
