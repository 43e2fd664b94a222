package transport

import (
	"context"
	"sync"
	"time"
)

type UserVar struct {
	Key   string
	Value string
}

type UserEvent struct {
	Name    string
	Payload string
}

// Memory is an in-process bundle that records every call.
type Memory struct {
	mu         sync.RWMutex
	settings   Settings
	configured int
	inits      int
	record     bool
	sessionID  string
	hasSession bool
	connects   int
	connectErr error
	vars       []UserVar
	events     []UserEvent
}

func NewMemory() *Memory {
	return &Memory{
		vars:   make([]UserVar, 0),
		events: make([]UserEvent, 0),
	}
}

func (m *Memory) Bundle() Bundle {
	return Bundle{Session: m, Socket: m, Messages: m}
}

func (m *Memory) Configure(s Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
	m.configured++
}

func (m *Memory) Init() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inits++
}

func (m *Memory) SetRecord(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = v
}

func (m *Memory) Record() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.record
}

func (m *Memory) SessionID() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionID, m.hasSession
}

// SetSession installs a session; an empty id marks it pending.
func (m *Memory) SetSession(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionID = id
	m.hasSession = true
}

func (m *Memory) ClearSession() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionID = ""
	m.hasSession = false
}

func (m *Memory) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connects++
	return m.connectErr
}

// FailConnect makes subsequent Connect calls return err.
func (m *Memory) FailConnect(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectErr = err
}

func (m *Memory) SetUserVar(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars = append(m.vars, UserVar{Key: key, Value: value})
}

func (m *Memory) UserEvent(name, payload string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, UserEvent{Name: name, Payload: payload})
}

func (m *Memory) Settings() (Settings, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings, m.configured
}

func (m *Memory) Inits() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.inits
}

func (m *Memory) Connects() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connects
}

func (m *Memory) Vars() []UserVar {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]UserVar, len(m.vars))
	copy(out, m.vars)
	return out
}

func (m *Memory) Events() []UserEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]UserEvent, len(m.events))
	copy(out, m.events)
	return out
}

// WaitEvents polls until at least n events were recorded or ctx ends.
func (m *Memory) WaitEvents(ctx context.Context, n int) ([]UserEvent, error) {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for {
		if events := m.Events(); len(events) >= n {
			return events, nil
		}
		select {
		case <-ctx.Done():
			return m.Events(), ctx.Err()
		case <-ticker.C:
		}
	}
}
