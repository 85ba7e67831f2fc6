package client

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kochabx/auth/session"
)

func TestRegistryNotifyOrder(t *testing.T) {
	r := newRegistry()

	var order []int
	r.subscribeAuth(func(Event, *session.Session) { order = append(order, 1) })
	r.subscribeAuth(func(Event, *session.Session) { order = append(order, 2) })
	r.subscribeAuth(func(Event, *session.Session) { order = append(order, 3) })

	r.notifyAuthChanged(SignedIn, &session.Session{AccessToken: "a", RefreshToken: "r"})
	require.Equal(t, []int{1, 2, 3}, order)
}

func TestRegistryUnsubscribeIsIdempotent(t *testing.T) {
	r := newRegistry()

	var first, second int
	unsub := r.subscribeToken(func() { first++ })
	r.subscribeToken(func() { second++ })

	r.notifyTokenChanged()
	require.Equal(t, 1, first)
	require.Equal(t, 1, second)

	unsub()
	unsub() // second call is a no-op

	r.notifyTokenChanged()
	require.Equal(t, 1, first)
	require.Equal(t, 2, second)
}

func TestRegistryUnsubscribeDuringNotify(t *testing.T) {
	r := newRegistry()

	var calls int
	var unsub func()
	unsub = r.subscribeToken(func() {
		calls++
		unsub()
	})

	r.notifyTokenChanged()
	r.notifyTokenChanged()
	require.Equal(t, 1, calls)
}

func TestRegistryNilSubscriber(t *testing.T) {
	r := newRegistry()

	unsub := r.subscribeToken(nil)
	require.NotNil(t, unsub)
	unsub()

	unsubAuth := r.subscribeAuth(nil)
	require.NotNil(t, unsubAuth)
	unsubAuth()

	r.notifyTokenChanged()
	r.notifyAuthChanged(SignedOut, nil)
}

func TestRegistrySubscriberGetsClone(t *testing.T) {
	r := newRegistry()

	original := &session.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         &session.User{ID: "u1", Roles: []string{"user"}},
	}

	r.subscribeAuth(func(_ Event, s *session.Session) {
		s.User.Roles[0] = "mutated"
	})
	r.notifyAuthChanged(SignedIn, original)

	require.Equal(t, "user", original.User.Roles[0])
}
