package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversToSubscribersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		got = append(got, "first")
		return errors.New("mail down")
	})
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.Payload.(UserRegisteredPayload).Email)
		return nil
	})
	d.Subscribe(EventDeadlineCreated, func(context.Context, Event) error {
		got = append(got, "wrong type")
		return nil
	})

	evt := New(EventUserRegistered, 3, UserRegisteredPayload{Email: "a@x.com"})
	err := d.Publish(context.Background(), evt)
	require.Error(t, err)
	require.Contains(t, err.Error(), "mail down")

	require.Equal(t, []string{"first", "second:a@x.com"}, got)
	require.NotEmpty(t, evt.ID)
	require.EqualValues(t, 3, evt.UserID)
}

func TestDispatcher_CatchAllRunsAfterTypedHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []EventType
	d.SubscribeAll(func(_ context.Context, e Event) error {
		got = append(got, "all:"+e.Type)
		return nil
	})
	d.Subscribe(EventDeadlineCreated, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})

	ctx := context.Background()
	require.NoError(t, d.Publish(ctx, New(EventDeadlineCreated, 1, nil)))
	require.NoError(t, d.Publish(ctx, New(EventUserLoggedIn, 1, nil)))

	require.Equal(t, []EventType{
		EventDeadlineCreated,
		"all:" + EventDeadlineCreated,
		"all:" + EventUserLoggedIn,
	}, got)
}

func TestDispatcher_RecoversHandlerPanic(t *testing.T) {
	d := NewInMemoryDispatcher()

	ran := false
	d.Subscribe(EventTimetableExported, func(context.Context, Event) error {
		panic("boom")
	})
	d.Subscribe(EventTimetableExported, func(context.Context, Event) error {
		ran = true
		return nil
	})

	err := d.Publish(context.Background(), New(EventTimetableExported, 1, nil))
	require.ErrorContains(t, err, "boom")
	require.True(t, ran)
}

func TestDispatcher_RejectsUntypedEvent(t *testing.T) {
	d := NewInMemoryDispatcher()
	require.Error(t, d.Publish(context.Background(), Event{}))
}

func TestDispatcher_NoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	require.NoError(t, d.Publish(context.Background(), New(EventTimetableExported, 1, nil)))
}
