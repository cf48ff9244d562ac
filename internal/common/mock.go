package common

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockMessageProducer struct {
	mock.Mock
}

func (m *MockMessageProducer) Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error {
	args := m.Called(ctx, msg, key, exchange)
	return args.Error(0)
}

// NewNopProducer returns a mock producer that accepts every message.
func NewNopProducer() *MockMessageProducer {
	p := new(MockMessageProducer)
	p.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return p
}
