package codec

import (
	"bytes"
	"errors"

	"brawl/internal/packet"
)

const (
	HeadLength    = 4
	MaxPacketSize = 8 << 20
)

var ErrPacketSizeExceed = errors.New("codec: packet size exceed")

// Decoder accumulates raw bytes from a connection and yields complete
// packets. Partial frames stay buffered until the rest arrives.
type Decoder struct {
	buf  *bytes.Buffer
	size int
	typ  packet.Type
}

func NewDecoder() *Decoder {
	return &Decoder{buf: bytes.NewBuffer(nil), size: -1}
}

func (d *Decoder) forward() error {
	header := d.buf.Next(HeadLength)
	d.typ = packet.Type(header[0])
	if d.typ < packet.Data || d.typ > packet.Forward {
		return packet.ErrWrongPacketType
	}
	d.size = bytesToInt(header[1:])
	if d.size > MaxPacketSize {
		return ErrPacketSizeExceed
	}
	return nil
}

func (d *Decoder) Decode(data []byte) ([]*packet.Packet, error) {
	if _, err := d.buf.Write(data); err != nil {
		return nil, err
	}

	// A pending size means the header is already parsed; only wait for
	// more bytes when the next header is still incomplete.
	if d.size < 0 && d.buf.Len() < HeadLength {
		return nil, nil
	}

	if d.size < 0 {
		if err := d.forward(); err != nil {
			return nil, err
		}
	}

	var packets []*packet.Packet
	for d.size >= 0 && d.size <= d.buf.Len() {
		// The body is copied out: packets are handed to component
		// mailboxes and outlive the buffer, which reuses its array on
		// later reads.
		body := append([]byte(nil), d.buf.Next(d.size)...)
		packets = append(packets, &packet.Packet{Type: d.typ, Length: d.size, Data: body})
		if d.buf.Len() < HeadLength {
			d.size = -1
			break
		}
		if err := d.forward(); err != nil {
			return packets, err
		}
	}

	return packets, nil
}

// Encode frames data into a single packet.
func Encode(typ packet.Type, data []byte) ([]byte, error) {
	if typ < packet.Data || typ > packet.Forward {
		return nil, packet.ErrWrongPacketType
	}
	if len(data) > MaxPacketSize {
		return nil, ErrPacketSizeExceed
	}

	buf := make([]byte, len(data)+HeadLength)
	buf[0] = byte(typ)
	copy(buf[1:HeadLength], intToBytes(len(data)))
	copy(buf[HeadLength:], data)

	return buf, nil
}

func bytesToInt(b []byte) int {
	return int(b[2]) | int(b[1])<<8 | int(b[0])<<16
}

func intToBytes(n int) []byte {
	var b [3]byte
	b[0] = byte(n >> 16)
	b[1] = byte(n >> 8)
	b[2] = byte(n)
	return b[:]
}
