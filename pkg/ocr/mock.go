package ocr

import (
	"context"
	"sync"
)

// MockClient returns a fixed two-row sheet; the default provider in
// development and tests.
type MockClient struct {
	mu    sync.Mutex
	Calls int

	// Result overrides the canned response when set.
	Result *Result
	Err    error
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Analyze(ctx context.Context, image []byte) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}

	return &Result{
		Cells: []Cell{
			{0, 0, "S/N"}, {0, 1, "Service No"}, {0, 2, "Name"},
			{0, 3, "Sit-Up"}, {0, 4, "Push-Up"}, {0, 5, "2.4km Run"},
			{1, 0, "1"}, {1, 1, "T0012345A"}, {1, 2, "PTE TAN WEI MING"},
			{1, 3, "42"}, {1, 4, "35"}, {1, 5, "10:30"},
			{2, 0, "2"}, {2, 1, "T0054321B"}, {2, 2, "CPL LIM JUN JIE"},
			{2, 3, "38"}, {2, 4, "30"}, {2, 5, "11:15"},
		},
	}, nil
}
