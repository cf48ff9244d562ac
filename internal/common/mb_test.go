package common

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMessageBrokerRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping broker integration test in short mode")
	}

	mb, err := NewMessageBroker(TestRabbitMQ(t))
	require.NoError(t, err)
	t.Cleanup(func() { mb.Close() })

	require.NoError(t, SetupSiteExchange(mb))

	msgs, err := mb.Consume(ContactSubmittedKey, SiteExchange, ContactSubmittedQueue)
	require.NoError(t, err)

	event := ContactSubmittedEvent{ID: "42", Name: "Ravi", Email: "ravi@example.com", Subject: "Quote", Message: "Need a website"}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = PublishEvent(ctx, mb, ContactSubmittedKey, event)
	require.NoError(t, err)

	select {
	case msg := <-msgs:
		var got ContactSubmittedEvent
		require.NoError(t, json.Unmarshal(msg.Body, &got))
		assert.Equal(t, event, got)
		assert.NoError(t, msg.Ack(false))
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}
}

func TestPublishEvent(t *testing.T) {
	p := new(MockMessageProducer)
	p.On("Publish", mock.Anything, []byte(`{"name":"Asha","email":"asha@example.com"}`), UserRegisteredKey, SiteExchange).Return(nil)

	err := PublishEvent(context.Background(), p, UserRegisteredKey, UserRegisteredEvent{Name: "Asha", Email: "asha@example.com"})
	assert.NoError(t, err)
	p.AssertExpectations(t)
}
