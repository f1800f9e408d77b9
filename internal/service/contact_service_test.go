package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seanacker/souberUp/internal/config"
	"github.com/seanacker/souberUp/internal/models"
	"github.com/seanacker/souberUp/internal/repository"
)

func newContactFixture(t *testing.T, reciprocal string) (*ContactService, *fakeUserStore, *fakeConnectionStore) {
	t.Helper()
	users := newFakeUserStore()
	connections := newFakeConnectionStore()
	svc := NewContactService(users, connections, config.ContactsConfig{ReciprocalStatus: reciprocal}, zerolog.Nop())

	require.NoError(t, users.Create(context.Background(), models.User{
		ID: "alice", Name: "Alice", PhoneNumber: "+4915100000001", IsActive: true,
	}))
	require.NoError(t, users.Create(context.Background(), models.User{
		ID: "bob", Name: "Bob", PhoneNumber: "+4915100000002", IsActive: true,
	}))
	return svc, users, connections
}

func TestAddContact_CreatesBothEdges(t *testing.T) {
	t.Parallel()

	svc, _, connections := newContactFixture(t, "accepted")

	other, err := svc.AddContact(context.Background(), "alice", "+4915100000002")
	require.NoError(t, err)
	assert.Equal(t, "bob", other.ID)

	require.Len(t, connections.edges, 2)
	forward := connections.edges[edgeKey("alice", "bob")]
	reverse := connections.edges[edgeKey("bob", "alice")]
	assert.Equal(t, models.ConnectionStatusAccepted, forward.Status)
	assert.Equal(t, models.ConnectionStatusAccepted, reverse.Status)
}

func TestAddContact_PendingReciprocal(t *testing.T) {
	t.Parallel()

	svc, _, connections := newContactFixture(t, "pending")

	_, err := svc.AddContact(context.Background(), "alice", "+4915100000002")
	require.NoError(t, err)

	forward := connections.edges[edgeKey("alice", "bob")]
	reverse := connections.edges[edgeKey("bob", "alice")]
	assert.Equal(t, models.ConnectionStatusAccepted, forward.Status)
	assert.Equal(t, models.ConnectionStatusPending, reverse.Status)
}

func TestAddContact_UnknownPhone(t *testing.T) {
	t.Parallel()

	svc, _, _ := newContactFixture(t, "accepted")

	_, err := svc.AddContact(context.Background(), "alice", "+4915199999999")
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestAddContact_Self(t *testing.T) {
	t.Parallel()

	svc, _, connections := newContactFixture(t, "accepted")

	_, err := svc.AddContact(context.Background(), "alice", "+4915100000001")
	assert.ErrorIs(t, err, ErrSelfContact)
	assert.Empty(t, connections.edges)
}

func TestAddContact_Duplicate(t *testing.T) {
	t.Parallel()

	svc, _, connections := newContactFixture(t, "accepted")

	_, err := svc.AddContact(context.Background(), "alice", "+4915100000002")
	require.NoError(t, err)

	_, err = svc.AddContact(context.Background(), "alice", "+4915100000002")
	assert.ErrorIs(t, err, repository.ErrContactExists)
	assert.Len(t, connections.edges, 2, "exactly two edges after the first call")
}
