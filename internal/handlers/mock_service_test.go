package handlers_test

import (
	"context"
	"errors"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/shortlink/internal/shortener"
)

var errMock = errors.New("mock error")

const testURL = "https://example.com/a/very/long/path"

// mockService is a LinkService double returning canned errors.
type mockService struct {
	createErr    error
	resolveErr   error
	analyticsErr error
}

func (m *mockService) Create(_ context.Context, _ string) (*shortener.ShortLink, error) {
	return nil, m.createErr
}

func (m *mockService) Resolve(_ context.Context, _ shortener.ID) (*shortener.Resolution, error) {
	return nil, m.resolveErr
}

func (m *mockService) Analytics(_ context.Context, _ shortener.ID) (*shortener.Analytics, error) {
	return nil, m.analyticsErr
}

// recordingPublisher captures published messages by topic.
type recordingPublisher struct {
	mu         sync.Mutex
	messages   map[string][]*message.Message
	publishErr error
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{messages: make(map[string][]*message.Message)}
}

func (p *recordingPublisher) Publish(topic string, msgs ...*message.Message) error {
	if p.publishErr != nil {
		return p.publishErr
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.messages[topic] = append(p.messages[topic], msgs...)

	return nil
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) count(topic string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.messages[topic])
}
