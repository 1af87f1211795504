package store

import "sync"

// Memory is a process-local Settings implementation, used as a test double
// and by the "memory" backend.
type Memory struct {
	mu             sync.Mutex
	firstLaunch    int64
	launchCount    int
	doNotShowAgain bool
}

// NewMemory returns an empty record.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) FirstLaunchDate() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.firstLaunch
}

func (m *Memory) SetFirstLaunchDate(ms int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.firstLaunch = ms
}

func (m *Memory) LaunchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.launchCount
}

func (m *Memory) SetLaunchCount(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.launchCount = n
}

func (m *Memory) DoNotShowAgain() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doNotShowAgain
}

func (m *Memory) SetDoNotShowAgain(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doNotShowAgain = v
}
