package storage

import (
	"testing"
	"time"

	"github.com/poiesic/radiolex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("координаты цели")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalMessage(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		msg  *core.Message
	}{
		{
			name: "full message",
			msg: &core.Message{
				Id:         7,
				Timestamp:  now,
				Body:       "Сокол, я Береза. Координаты цели квадрат 45.",
				Area:       "Север",
				Frequency:  146.525,
				CallSigns:  []string{"Сокол", "Береза"},
				Category:   "coordinates",
				InsertedAt: now.Add(time.Second),
			},
		},
		{
			name: "empty body and no call-signs",
			msg: &core.Message{
				Id:        8,
				Timestamp: now,
				CallSigns: []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalMessage(tt.msg)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalMessage(data)
			require.NoError(t, err)
			assert.Equal(t, tt.msg.Id, decoded.Id)
			assert.True(t, tt.msg.Timestamp.Equal(decoded.Timestamp))
			assert.Equal(t, tt.msg.Body, decoded.Body)
			assert.Equal(t, tt.msg.Area, decoded.Area)
			assert.Equal(t, tt.msg.Frequency, decoded.Frequency)
			assert.ElementsMatch(t, tt.msg.CallSigns, decoded.CallSigns)
			assert.Equal(t, tt.msg.Category, decoded.Category)
			assert.True(t, tt.msg.InsertedAt.Equal(decoded.InsertedAt))
		})
	}
}

func TestUnmarshalMessage_Truncated(t *testing.T) {
	data := MarshalMessage(&core.Message{Id: 1, Timestamp: time.Now(), Body: "пеленг"})
	_, err := UnmarshalMessage(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalCheckpoint(t *testing.T) {
	cp := &core.Checkpoint{
		ProcessorType: "reclassify",
		LastID:        1234,
		UpdatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
	decoded, err := UnmarshalCheckpoint(MarshalCheckpoint(cp))
	require.NoError(t, err)
	assert.Equal(t, cp.ProcessorType, decoded.ProcessorType)
	assert.Equal(t, cp.LastID, decoded.LastID)
	assert.True(t, cp.UpdatedAt.Equal(decoded.UpdatedAt))
}
