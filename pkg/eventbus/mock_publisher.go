package eventbus

import (
	"github.com/stretchr/testify/mock"

	"github.com/achievekit/achievement-engine/pkg/domain"
)

// MockPublisher is a mock implementation of Publisher for testing.
// It uses testify/mock to allow test assertions on published events.
type MockPublisher struct {
	mock.Mock
}

// NewMockPublisher creates a new mock publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishUnlocked mocks publishing an unlock event.
func (m *MockPublisher) PublishUnlocked(event domain.UnlockedEvent) {
	m.Called(event)
}

// PublishScoreChanged mocks publishing a score update event.
func (m *MockPublisher) PublishScoreChanged(event domain.ScoreChangedEvent) {
	m.Called(event)
}
