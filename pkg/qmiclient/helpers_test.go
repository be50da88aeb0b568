package qmiclient_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/freedesktop/libqmi/pkg/log"
	"github.com/freedesktop/libqmi/pkg/qmiclient"
)

// fooService mirrors the registry qmi-codegen emits for a small service.
var fooService = qmiclient.ServiceSpec{
	Service: "FOO",
	Client:  "QMI Client FOO",
	Since:   "1.0",
	Messages: []qmiclient.MessageSpec{
		{Name: "Do Thing", ID: 0x0001, Abort: true, HasInput: true, HasOutput: true, Since: "1.2"},
		{Name: "Reset", ID: 0x0002, Vendor: 0x0046, HasVendor: true, HasOutput: true, Since: "1.0"},
		{Name: "Get Thing", ID: 0x0003, HasInput: true, HasOutput: true, Since: "1.0"},
	},
	Indications: []qmiclient.IndicationSpec{
		{Name: "Thing Happened", Signal: "thing-happened", ID: 0x0001, HasOutput: true, Since: "1.2"},
		{Name: "Ping", Signal: "ping", ID: 0x0002, Since: "1.4"},
	},
}

const abortMessageID uint16 = 0x0000

func messageSpec(t *testing.T, name string) qmiclient.MessageSpec {
	t.Helper()
	spec, ok := fooService.Message(name)
	require.True(t, ok, "unknown message %q", name)
	return spec
}

// u32Codec encodes a single uint32 TLV value.
var u32Codec = qmiclient.Codec[uint32, uint32]{
	Encode: func(v uint32) ([]byte, error) {
		return binary.LittleEndian.AppendUint32(nil, v), nil
	},
	Decode: decodeU32,
}

var errShortPayload = errors.New("short payload")

func decodeU32(p []byte) (uint32, error) {
	if len(p) < 4 {
		return 0, errShortPayload
	}
	return binary.LittleEndian.Uint32(p), nil
}

func u32(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }

// abortCodec carries the transaction id to abort as a uint16.
func abortCodec() *qmiclient.AbortCodec {
	return &qmiclient.AbortCodec{
		MessageID: abortMessageID,
		Encode: func(tid uint16) ([]byte, error) {
			return binary.LittleEndian.AppendUint16(nil, tid), nil
		},
	}
}

// eventSink collects protocol events on a channel.
type eventSink chan log.Event

func (s eventSink) Log(e log.Event) { s <- e }

func (s eventSink) next(t *testing.T, cat log.Category) log.Event {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e := <-s:
			if e.Category == cat {
				return e
			}
		case <-timeout:
			t.Fatalf("no %s event received", cat)
			return log.Event{}
		}
	}
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("operation did not complete")
	}
}
