package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatusMessage(t *testing.T) {
	msg, err := BookingStatusMessage("c@x.io", "Dilnoza", 5, "2030-01-07", "10:00", "approved")
	require.NoError(t, err)

	assert.Equal(t, "c@x.io", msg.To)
	assert.Equal(t, "Booking Approved", msg.Subject)
	assert.Contains(t, msg.HTML, "#5")
	assert.Contains(t, msg.HTML, "Approved")
}

func TestActivationMessage_EscapesName(t *testing.T) {
	msg, err := ActivationMessage("u@x.io", "<b>x</b>", "012345", 16)
	require.NoError(t, err)

	assert.Equal(t, "Activate Your Account", msg.Subject)
	assert.Contains(t, msg.HTML, "012345")
	assert.NotContains(t, msg.HTML, "<b>x</b>")
}

func TestOutbox_Last(t *testing.T) {
	var box Outbox
	ctx := context.Background()
	require.NoError(t, box.Send(ctx, Message{To: "a", Subject: "1"}))
	require.NoError(t, box.Send(ctx, Message{To: "b", Subject: "2"}))
	require.NoError(t, box.Send(ctx, Message{To: "a", Subject: "3"}))

	last, ok := box.Last("a")
	require.True(t, ok)
	assert.Equal(t, "3", last.Subject)
	assert.Len(t, box.Messages(), 3)

	_, ok = box.Last("missing")
	assert.False(t, ok)
}
