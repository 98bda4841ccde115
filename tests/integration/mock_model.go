package integration

import (
	"context"
	"fmt"
	"sync"
)

// MockModel is a scripted llm.CompletionClient. Outputs are consumed in
// order; a call past the end of the script is a test bug and errors.
type MockModel struct {
	mu      sync.Mutex
	outputs []string
	prompts []string
}

// NewMockModel creates a model that replays the given outputs.
func NewMockModel(outputs ...string) *MockModel {
	return &MockModel{outputs: outputs}
}

// Complete returns the next scripted output and records the prompt.
func (m *MockModel) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := len(m.prompts)
	m.prompts = append(m.prompts, prompt)
	if i >= len(m.outputs) {
		return "", fmt.Errorf("unscripted model call %d", i)
	}
	return m.outputs[i], nil
}

// Calls reports how many completions were requested.
func (m *MockModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// Prompt returns the i-th recorded prompt.
func (m *MockModel) Prompt(i int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prompts[i]
}
