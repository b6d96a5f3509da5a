package mykafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_ConfiguresWriter(t *testing.T) {
	t.Parallel()

	p := NewProducer([]string{"localhost:9092", "localhost:9093"})
	t.Cleanup(func() { _ = p.Close() })

	require.NotNil(t, p.writer.Addr)
	assert.True(t, p.writer.AllowAutoTopicCreation)
}

func TestProducer_MarshalError(t *testing.T) {
	t.Parallel()

	p := NewProducer([]string{"localhost:9092"})
	t.Cleanup(func() { _ = p.Close() })

	err := p.PublishEvent(context.Background(), UserTopic, "k", make(chan int))
	require.ErrorContains(t, err, "marshal event")
}

func TestNopPublisher(t *testing.T) {
	t.Parallel()

	var pub Publisher = NopPublisher{}
	require.NoError(t, pub.PublishEvent(context.Background(), UserTopic, "1", UserEvent{Type: UserRegistered}))
}
