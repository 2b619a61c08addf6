package http_test

import (
	"context"
	"iter"
	"sync"
	"time"

	httpadapter "freight/internal/adapters/in/http"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/history"
	"freight/internal/core/domain/model/listing"
	"freight/internal/core/domain/model/request"

	"github.com/stretchr/testify/mock"
)

type MockCreateListingHandler struct{ mock.Mock }

func (m *MockCreateListingHandler) Handle(ctx context.Context, cmd commands.CreateListingCommand) (*listing.Listing, error) {
	args := m.Called(ctx, cmd)
	l, _ := args.Get(0).(*listing.Listing)
	return l, args.Error(1)
}

type MockChangeListingStatusHandler struct{ mock.Mock }

func (m *MockChangeListingStatusHandler) Handle(
	ctx context.Context, cmd commands.ChangeListingStatusCommand,
) (*listing.Listing, error) {
	args := m.Called(ctx, cmd)
	l, _ := args.Get(0).(*listing.Listing)
	return l, args.Error(1)
}

type MockGetListingHandler struct{ mock.Mock }

func (m *MockGetListingHandler) Handle(
	ctx context.Context, query queries.GetListingQuery,
) (queries.GetListingQueryResponse, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(queries.GetListingQueryResponse)
	return resp, args.Error(1)
}

type MockCreateRequestHandler struct{ mock.Mock }

func (m *MockCreateRequestHandler) Handle(
	ctx context.Context, cmd commands.CreateRequestCommand,
) (commands.PlacedRequest, error) {
	args := m.Called(ctx, cmd)
	placed, _ := args.Get(0).(commands.PlacedRequest)
	return placed, args.Error(1)
}

type MockTransitionRequestHandler struct{ mock.Mock }

func (m *MockTransitionRequestHandler) Handle(
	ctx context.Context, cmd commands.TransitionRequestCommand,
) (*request.TransportRequest, error) {
	args := m.Called(ctx, cmd)
	r, _ := args.Get(0).(*request.TransportRequest)
	return r, args.Error(1)
}

type MockRemoveRequestHandler struct{ mock.Mock }

func (m *MockRemoveRequestHandler) Handle(ctx context.Context, cmd commands.RemoveRequestCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockGetRequestHandler struct{ mock.Mock }

func (m *MockGetRequestHandler) Handle(
	ctx context.Context, query queries.GetRequestQuery,
) (queries.GetRequestQueryResponse, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(queries.GetRequestQueryResponse)
	return resp, args.Error(1)
}

type MockReportPositionHandler struct{ mock.Mock }

func (m *MockReportPositionHandler) Handle(ctx context.Context, cmd commands.ReportPositionCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockGetHistoryHandler struct{ mock.Mock }

func (m *MockGetHistoryHandler) Handle(
	ctx context.Context, query queries.GetHistoryQuery,
) (iter.Seq[history.Item], error) {
	args := m.Called(ctx, query)
	seq, _ := args.Get(0).(iter.Seq[history.Item])
	return seq, args.Error(1)
}

// memoryStore is an in-process IdempotencyStore.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*httpadapter.StoredResponse
	reserve map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		entries: map[string]*httpadapter.StoredResponse{},
		reserve: map[string]bool{},
	}
}

func (s *memoryStore) Reserve(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reserve[key] {
		return false, nil
	}
	s.reserve[key] = true
	return true, nil
}

func (s *memoryStore) Load(_ context.Context, key string) (*httpadapter.StoredResponse, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resp, ok := s.entries[key]; ok {
		return resp, true, nil
	}
	return nil, s.reserve[key], nil
}

func (s *memoryStore) Save(_ context.Context, key string, resp httpadapter.StoredResponse, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &resp
	return nil
}

func (s *memoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reserve, key)
	delete(s.entries, key)
	return nil
}
