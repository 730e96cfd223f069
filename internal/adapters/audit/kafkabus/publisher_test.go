package kafkabus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-records-portal/internal/ports/audit"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("expected deadline")
	}
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublish_EncodesEventKeyedByPatient(t *testing.T) {
	fw := &fakeWriter{}
	p := &Publisher{w: fw}
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	err := p.Publish(t.Context(), audit.Event{
		Type: audit.EventAccessGranted, ActorID: 7, PatientID: 7, DoctorID: 9, At: at,
	})
	require.NoError(t, err)
	require.Len(t, fw.msgs, 1)

	msg := fw.msgs[0]
	assert.Equal(t, "7", string(msg.Key))
	assert.Equal(t, "access.granted", string(msg.Headers[0].Value))

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "access.granted", got["type"])
	assert.EqualValues(t, 9, got["doctor_id"])
	assert.NotContains(t, got, "report_id")

	require.NoError(t, p.Close())
	assert.True(t, fw.closed)
}

func TestPublish_PropagatesWriterError(t *testing.T) {
	boom := errors.New("leader not available")
	p := &Publisher{w: &fakeWriter{err: boom}}

	err := p.Publish(t.Context(), audit.Event{Type: audit.EventReportUploaded, PatientID: 1, ReportID: 3})
	assert.ErrorIs(t, err, boom)
}

func TestNew_Validates(t *testing.T) {
	_, err := New(nil, "portal.audit")
	assert.Error(t, err)

	_, err = New([]string{"localhost:9092"}, "")
	assert.Error(t, err)

	p, err := New([]string{"localhost:9092"}, "portal.audit")
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}
