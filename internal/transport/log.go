package transport

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/rs/zerolog"
)

// Log is a dry-run bundle that writes every forwarded call to a logger.
// Connect mints a random session identifier.
type Log struct {
	logger zerolog.Logger

	mu        sync.RWMutex
	settings  Settings
	record    bool
	sessionID string
	started   bool
}

func NewLog(logger zerolog.Logger) *Log {
	return &Log{logger: logger.With().Str("transport", "log").Logger()}
}

func (l *Log) Bundle() Bundle {
	return Bundle{Session: l, Socket: l, Messages: l}
}

func (l *Log) Configure(s Settings) {
	l.mu.Lock()
	l.settings = s
	l.mu.Unlock()
	l.logger.Info().Int("site_id", s.SiteID).Str("session_header", s.SessionIDHeader).Msg("session configured")
}

func (l *Log) Init() {
	l.mu.Lock()
	l.started = true
	l.mu.Unlock()
	l.logger.Info().Msg("session init")
}

func (l *Log) SetRecord(v bool) {
	l.mu.Lock()
	l.record = v
	l.mu.Unlock()
	l.logger.Debug().Bool("record", v).Msg("session record")
}

func (l *Log) Record() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.record
}

func (l *Log) SessionID() (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sessionID, l.started
}

func (l *Log) Connect() error {
	var raw [8]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return err
	}
	id := hex.EncodeToString(raw[:])
	l.mu.Lock()
	l.sessionID = id
	l.started = true
	l.mu.Unlock()
	l.logger.Info().Str("session_id", id).Msg("socket connected")
	return nil
}

func (l *Log) SetUserVar(key, value string) {
	l.logger.Info().Str("key", key).Str("value", value).Msg("user var")
}

func (l *Log) UserEvent(name, payload string) {
	l.logger.Info().Str("name", name).RawJSON("payload", []byte(payload)).Msg("user event")
}
