package ipc

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestEnvelopeFraming(t *testing.T) {
	var buf bytes.Buffer
	env, err := NewEnvelope(TypeInventory, InventoryMessage{Items: map[string]int{"Cling Gem": 1}})
	require.NoError(t, err)
	require.NoError(t, WriteEnvelope(&buf, env))

	length := binary.LittleEndian.Uint32(buf.Bytes()[:4])
	assert.Equal(t, buf.Len()-4, int(length))

	got, err := ReadEnvelope(&buf)
	require.NoError(t, err)
	assert.Equal(t, TypeInventory, got.Type)

	var inv InventoryMessage
	require.NoError(t, json.Unmarshal(got.Data, &inv))
	assert.Equal(t, 1, inv.Items["Cling Gem"])
}

func TestReadEnvelopeRejectsBadLength(t *testing.T) {
	for _, length := range []uint32{0, MaxFrame + 1} {
		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, length))
		_, err := ReadEnvelope(&buf)
		assert.Error(t, err, "length %d", length)
	}
}

func TestReadEnvelopeTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(10)))
	buf.WriteString(`{"ty`)
	_, err := ReadEnvelope(&buf)
	assert.Error(t, err)
}

func TestReadLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	server, client := net.Pipe()
	defer client.Close()

	c := NewConnection(server, nil)
	c.RegisterHandler(TypeHello, func(env Envelope) (*Envelope, error) {
		ack, err := NewEnvelope(TypeAck, AckMessage{Status: "ok"})
		return &ack, err
	})
	c.RegisterHandler(TypeInventory, func(env Envelope) (*Envelope, error) {
		return nil, errors.New("no session")
	})
	done := make(chan struct{})
	go func() {
		c.ReadLoop()
		close(done)
	}()

	exchange := func(msgType string) Envelope {
		t.Helper()
		env, err := NewEnvelope(msgType, struct{}{})
		require.NoError(t, err)
		require.NoError(t, WriteEnvelope(client, env))
		resp, err := ReadEnvelope(client)
		require.NoError(t, err)
		return resp
	}

	assert.Equal(t, TypeAck, exchange(TypeHello).Type)

	resp := exchange(TypeInventory)
	require.Equal(t, TypeError, resp.Type)
	var msg ErrorMessage
	require.NoError(t, json.Unmarshal(resp.Data, &msg))
	assert.Equal(t, "no session", msg.Error)

	assert.Equal(t, TypeError, exchange("surrender").Type)

	client.Close()
	<-done
}
