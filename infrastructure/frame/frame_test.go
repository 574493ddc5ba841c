package frame

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bazario/fulfillment-service/domain/actions"
	buyer_action "github.com/bazario/fulfillment-service/domain/actions/buyer"
	"github.com/bazario/fulfillment-service/domain/events"
)

func TestFrameHeader(t *testing.T) {
	frame := Factory().
		SetOrderId(1234456).
		SetBody(11111111).Build()

	frame2 := Factory().
		SetBuyerId(9999999).
		SetBody(222222222).Build()

	frame.Header().CopyFrom(frame2.Header())
	require.True(t, frame.Header().KeyExists(string(HeaderBuyerId)))
	require.Equal(t, uint64(9999999), frame.Header().Value(string(HeaderBuyerId)))
	require.Equal(t, 11111111, frame.Body().Content())
}

func TestFrameEventRidesInBody(t *testing.T) {
	event := events.New(
		events.ActorIdentity{ID: 1000001, Role: actions.Buyer},
		buyer_action.New(buyer_action.Cancel), 42,
		events.CancelData{Reason: "ordered the wrong size"})

	frame := Factory().SetOrderId(42).SetEvent(event).Build()
	require.Equal(t, event, frame.Body().Content().(events.IEvent))

	// rebuilding from an existing frame keeps the payload
	frame2 := FactoryOf(frame).SetBuyerId(1000001).Build()
	require.Equal(t, event, frame2.Body().Content().(events.IEvent))
}

func TestFrameCopyIfAbsent(t *testing.T) {
	frame := Factory().SetOrderId(42).Build()
	frame2 := Factory().SetOrderId(43).SetItemId(7).Build()

	frame.Header().CopyIfAbsent(frame2.Header())
	require.Equal(t, uint64(42), frame.Header().Value(string(HeaderOrderId)))
	require.Equal(t, uint64(7), frame.Header().Value(string(HeaderItemId)))
}
