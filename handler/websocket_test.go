package handler

import (
	"restaurant_manager/constants"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInboundCallWaiterIsRebroadcastAsWaiterCalled(t *testing.T) {
	raw := []byte(`{"type":"call_waiter","payload":{"tableId":3}}`)

	out, ok := inboundEvent(raw)
	require.True(t, ok)
	require.Equal(t, constants.EVENT_WAITER_CALLED, out.Type)

	payload, ok := out.Payload.(map[string]any)
	require.True(t, ok)
	require.EqualValues(t, 3, payload["tableId"])
}

func TestInboundUnknownTypeIsDropped(t *testing.T) {
	_, ok := inboundEvent([]byte(`{"type":"order_paid","payload":{"orderId":1}}`))
	require.False(t, ok)

	// outbound topic name sent inbound is not a waiter call either
	_, ok = inboundEvent([]byte(`{"type":"waiter_called","payload":{"tableId":3}}`))
	require.False(t, ok)
}

func TestInboundGarbageIsDropped(t *testing.T) {
	_, ok := inboundEvent([]byte(`not json`))
	require.False(t, ok)
}
