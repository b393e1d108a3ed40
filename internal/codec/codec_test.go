package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brawl/internal/packet"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data := []byte("hello brawl")
	frame, err := Encode(packet.Data, data)
	require.NoError(t, err)
	assert.Len(t, frame, len(data)+HeadLength)

	packets, err := NewDecoder().Decode(frame)
	require.NoError(t, err)
	require.Len(t, packets, 1)
	assert.Equal(t, packet.Data, packets[0].Type)
	assert.Equal(t, len(data), packets[0].Length)
	assert.Equal(t, data, packets[0].Data)
}

func TestDecodePartialFrames(t *testing.T) {
	frame, err := Encode(packet.Heartbeat, []byte{1, 2, 3, 4, 5})
	require.NoError(t, err)

	d := NewDecoder()

	packets, err := d.Decode(frame[:2])
	require.NoError(t, err)
	assert.Empty(t, packets)

	packets, err = d.Decode(frame[2:6])
	require.NoError(t, err)
	assert.Empty(t, packets)

	packets, err = d.Decode(frame[6:])
	require.NoError(t, err)
	require.Len(t, packets, 1)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, packets[0].Data)
}

func TestDecodeSplitSmallFrame(t *testing.T) {
	frame, err := Encode(packet.Data, []byte{9, 8})
	require.NoError(t, err)

	d := NewDecoder()

	packets, err := d.Decode(frame[:HeadLength])
	require.NoError(t, err)
	assert.Empty(t, packets)

	// The body is shorter than a header; the frame must still come out
	// as soon as it completes.
	packets, err = d.Decode(frame[HeadLength:])
	require.NoError(t, err)
	require.Len(t, packets, 1)
	assert.Equal(t, []byte{9, 8}, packets[0].Data)
}

func TestDecodedPacketsSurviveLaterReads(t *testing.T) {
	d := NewDecoder()

	frame, err := Encode(packet.Data, []byte("hello brawl"))
	require.NoError(t, err)
	packets, err := d.Decode(frame)
	require.NoError(t, err)
	require.Len(t, packets, 1)
	retained := packets[0]

	// Packets are handed to component mailboxes, so their payloads must
	// not alias the decoder's buffer once later frames reuse it.
	filler := bytes.Repeat([]byte{0x02}, 1500)
	for i := 0; i < 64; i++ {
		frame, err := Encode(packet.Data, filler)
		require.NoError(t, err)
		_, err = d.Decode(frame)
		require.NoError(t, err)
	}

	assert.Equal(t, []byte("hello brawl"), retained.Data)
}

func TestDecodeMultipleFramesAtOnce(t *testing.T) {
	first, err := Encode(packet.Data, []byte("one"))
	require.NoError(t, err)
	second, err := Encode(packet.Kick, nil)
	require.NoError(t, err)

	packets, err := NewDecoder().Decode(append(first, second...))
	require.NoError(t, err)
	require.Len(t, packets, 2)
	assert.Equal(t, packet.Data, packets[0].Type)
	assert.Equal(t, packet.Kick, packets[1].Type)
	assert.Empty(t, packets[1].Data)
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	_, err := NewDecoder().Decode([]byte{0x7F, 0, 0, 0})
	assert.ErrorIs(t, err, packet.ErrWrongPacketType)
}

func TestEncodeRejectsUnknownType(t *testing.T) {
	_, err := Encode(packet.Type(0x7F), nil)
	assert.ErrorIs(t, err, packet.ErrWrongPacketType)
}

func TestDecodeRejectsOversizedFrame(t *testing.T) {
	header := []byte{byte(packet.Data), 0xFF, 0xFF, 0xFF}
	_, err := NewDecoder().Decode(header)
	assert.ErrorIs(t, err, ErrPacketSizeExceed)
}

func TestIntBytesRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 255, 256, 65535, 1 << 20, MaxPacketSize} {
		assert.Equal(t, n, bytesToInt(intToBytes(n)), "n=%d", n)
	}
}
