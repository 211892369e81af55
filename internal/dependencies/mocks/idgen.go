package mocks

import (
	"fmt"

	"github.com/yx043749/beaver-farm/internal/dependencies/idgen"
)

// MockIDGenerator is a mock implementation of idgen.Generator for testing
type MockIDGenerator struct {
	// IDs is a queue of results to return from NewID
	IDs   []string
	index int
	count int
}

// Ensure MockIDGenerator implements Generator
var _ idgen.Generator = (*MockIDGenerator)(nil)

// NewMockIDGenerator creates a new MockIDGenerator
func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

// NewID returns the next queued ID, or a sequential "habit-N" once the queue is empty
func (g *MockIDGenerator) NewID() string {
	if g.index < len(g.IDs) {
		id := g.IDs[g.index]
		g.index++
		return id
	}
	g.count++
	return fmt.Sprintf("habit-%d", g.count)
}

// Queue adds values to the ID queue
func (g *MockIDGenerator) Queue(ids ...string) {
	g.IDs = append(g.IDs, ids...)
}

// Reset clears all queued IDs and the sequence counter
func (g *MockIDGenerator) Reset() {
	g.IDs = nil
	g.index = 0
	g.count = 0
}
