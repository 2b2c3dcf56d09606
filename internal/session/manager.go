package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lab-visualizer/backend/internal/models"
	"github.com/lab-visualizer/backend/internal/parser"
	"github.com/lab-visualizer/backend/internal/resultstore"
	"github.com/lab-visualizer/backend/internal/seqindex"
)

// MaxSessions limits concurrent sessions to prevent memory exhaustion.
const MaxSessions = 10

// SessionMaxAge is how long to keep completed sessions before cleanup.
const SessionMaxAge = 30 * time.Minute

// SessionKeepAliveWindow is how long to keep sessions that are actively
// being used.
const SessionKeepAliveWindow = 5 * time.Minute

// FileSource resolves uploaded file IDs to disk paths and answers
// companion sequence-file lookups.
type FileSource interface {
	seqindex.Index
	GetFilePath(fileID string) (string, error)
}

// Manager handles active measurement parsing sessions.
type Manager struct {
	sessions map[string]*State
	mu       sync.RWMutex
	registry *parser.Registry
	tempDir  string
	files    FileSource
	seqOpts  seqindex.Options
	cache    *ResultCache
}

// State holds one session's metadata, the parsed measurement and its
// DuckDB-backed result rows.
type State struct {
	Session      *models.ParseSession
	Measurement  *models.Measurement
	Store        *resultstore.Store
	LastAccessed time.Time
}

// NewManager creates a session manager writing scratch databases to
// tempDir.
func NewManager(registry *parser.Registry, tempDir string) *Manager {
	return &Manager{
		sessions: make(map[string]*State),
		registry: registry,
		tempDir:  tempDir,
		seqOpts:  seqindex.DefaultOptions(),
	}
}

// WithFileSource enables companion sequence-file lookup for data files.
func (m *Manager) WithFileSource(files FileSource, opts seqindex.Options) *Manager {
	m.files = files
	m.seqOpts = opts
	return m
}

// WithResultCache reuses previously parsed result databases across
// sessions for the same file.
func (m *Manager) WithResultCache(cache *ResultCache) *Manager {
	m.cache = cache
	return m
}

// StartSession begins the parsing process for a file.
func (m *Manager) StartSession(fileID, filePath string) (*models.ParseSession, error) {
	m.cleanupOldSessionsIfNeeded()

	sessionID := uuid.New().String()
	session := models.NewParseSession(sessionID, fileID)
	session.Status = models.SessionStatusParsing

	state := &State{
		Session:      session,
		LastAccessed: time.Now(),
	}

	m.mu.Lock()
	m.sessions[sessionID] = state
	m.mu.Unlock()

	go m.runParse(sessionID, fileID, filePath)

	return session, nil
}

func (m *Manager) runParse(sessionID, fileID, filePath string) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[Parse %s] PANIC recovered: %v\n", shortID(sessionID), r)
			m.updateSessionError(sessionID, fmt.Sprintf("parse panicked: %v", r))
		}
	}()

	start := time.Now()

	p, err := m.registry.FindParser(filePath)
	if err != nil {
		m.updateSessionError(sessionID, fmt.Sprintf("failed to find parser: %v", err))
		return
	}
	fmt.Printf("[Parse %s] Using parser %s for %s\n", shortID(sessionID), p.Name(), filePath)

	var meas *models.Measurement
	if dat, ok := p.(*parser.DatFileParser); ok {
		seqLines, seqID := m.lookupSequence(fileID)
		if seqID != "" {
			m.mu.Lock()
			if state, ok := m.sessions[sessionID]; ok {
				state.Session.SequenceFileID = seqID
			}
			m.mu.Unlock()
		}
		meas, err = dat.ParseWithSequence(filePath, seqLines)
	} else {
		meas, err = p.Parse(filePath)
	}
	if err != nil {
		fmt.Printf("[Parse %s] ERROR: parse failed: %v\n", shortID(sessionID), err)
		m.updateSessionError(sessionID, fmt.Sprintf("parse failed: %v", err))
		return
	}
	meas.FileID = fileID

	store, storeErr := m.storeResults(sessionID, fileID, meas)

	elapsed := time.Since(start).Milliseconds()

	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[sessionID]
	if !ok {
		if store != nil {
			store.Close()
		}
		return
	}

	state.Measurement = meas
	state.Store = store
	state.Session.Status = models.SessionStatusComplete
	state.Session.Family = meas.Family
	state.Session.RunCount = len(meas.Runs)
	state.Session.StepCount = len(meas.Steps)
	state.Session.ProcessingTimeMs = elapsed
	state.Session.Errors = append(state.Session.Errors, meas.Warnings...)
	if storeErr != nil {
		state.Session.Errors = append(state.Session.Errors, models.ParseError{
			Reason: fmt.Sprintf("result store unavailable: %v", storeErr),
		})
	}

	fmt.Printf("[Parse %s] Parse complete: family=%s runs=%d steps=%d (%dms)\n",
		shortID(sessionID), meas.Family, len(meas.Runs), len(meas.Steps), elapsed)
}

// lookupSequence waits for a companion sequence file to appear in the
// upload index. Not finding one is normal: the measurement is parsed
// with table-derived steps instead.
func (m *Manager) lookupSequence(fileID string) ([]string, string) {
	if m.files == nil {
		return nil, ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), m.seqOpts.Budget+time.Second)
	defer cancel()

	seqID, found := seqindex.WaitForSequenceFile(ctx, m.files, fileID, m.seqOpts)
	if !found {
		return nil, ""
	}
	seqPath, err := m.files.GetFilePath(seqID)
	if err != nil {
		return nil, ""
	}
	lines, err := parser.ReadLines(seqPath)
	if err != nil {
		return nil, ""
	}
	return lines, seqID
}

// storeResults flattens the measurement's result records into DuckDB,
// reusing the persistent cache when one is configured.
func (m *Manager) storeResults(sessionID, fileID string, meas *models.Measurement) (*resultstore.Store, error) {
	if m.cache != nil {
		if store, err := m.cache.Open(fileID); err == nil && store != nil {
			fmt.Printf("[Parse %s] Reusing cached results for file %s\n", shortID(sessionID), shortID(fileID))
			return store, nil
		}
		store, err := m.cache.CreateForFile(fileID)
		if err != nil {
			return nil, err
		}
		if err := fillStore(store, fileID, meas); err != nil {
			store.Close()
			return nil, err
		}
		m.cache.MarkComplete(fileID)
		return store, nil
	}

	store, err := resultstore.New(m.tempDir, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fillStore(store, fileID, meas); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

func fillStore(store *resultstore.Store, fileID string, meas *models.Measurement) error {
	if err := store.AddMeasurement(fileID, meas); err != nil {
		return err
	}
	return store.Finalize()
}

func (m *Manager) updateSessionError(sessionID, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[sessionID]
	if !ok {
		return
	}
	state.Session.Status = models.SessionStatusError
	state.Session.Errors = append(state.Session.Errors, models.ParseError{Reason: reason})
}

// cleanupOldSessionsIfNeeded removes completed sessions when at capacity.
func (m *Manager) cleanupOldSessionsIfNeeded() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) < MaxSessions {
		return
	}

	var toDelete []string
	for id, state := range m.sessions {
		if state.Session.Status == models.SessionStatusComplete ||
			state.Session.Status == models.SessionStatusError {
			toDelete = append(toDelete, id)
		}
	}

	toFree := len(m.sessions) - MaxSessions + 1
	deleted := 0
	for _, id := range toDelete {
		if deleted >= toFree {
			break
		}
		if state, ok := m.sessions[id]; ok {
			if state.Store != nil {
				state.Store.Close()
			}
			delete(m.sessions, id)
			deleted++
			fmt.Printf("[Manager] Cleaned up old session %s to free memory\n", shortID(id))
		}
	}
}

// CleanupOldSessions removes completed sessions older than maxAge, keeping
// sessions accessed within SessionKeepAliveWindow.
func (m *Manager) CleanupOldSessions(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	keepAliveCutoff := time.Now().Add(-SessionKeepAliveWindow)

	for id, state := range m.sessions {
		if state.Session.Status != models.SessionStatusComplete &&
			state.Session.Status != models.SessionStatusError {
			continue
		}
		if state.LastAccessed.After(keepAliveCutoff) {
			continue
		}
		if state.LastAccessed.Before(cutoff) {
			if state.Store != nil {
				state.Store.Close()
			}
			delete(m.sessions, id)
			fmt.Printf("[Manager] Cleaned up aged session %s (last accessed %s ago)\n",
				shortID(id), time.Since(state.LastAccessed).Round(time.Second))
		}
	}
}

// GetSession returns a session by ID.
func (m *Manager) GetSession(id string) (*models.ParseSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	return state.Session, true
}

// TouchSession updates the LastAccessed timestamp for a session so the
// cleanup loop leaves it alone.
func (m *Manager) TouchSession(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[id]
	if !ok {
		return false
	}
	state.LastAccessed = time.Now()
	return true
}

// GetMeasurement returns the parsed measurement for a completed session.
func (m *Manager) GetMeasurement(id string) (*models.Measurement, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.sessions[id]
	if !ok || state.Measurement == nil {
		return nil, false
	}
	return state.Measurement, true
}

// GetRunSummaries returns the stored run summaries for a session.
func (m *Manager) GetRunSummaries(id string) ([]resultstore.RunSummary, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.sessions[id]
	if !ok || state.Store == nil || state.Measurement == nil {
		return nil, false
	}
	runs, err := state.Store.Runs(state.Measurement.FileID)
	if err != nil {
		return nil, false
	}
	return runs, true
}

// SearchRuns finds stored runs by sweep type within a session.
func (m *Manager) SearchRuns(id, sweepType string) ([]resultstore.RunSummary, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.sessions[id]
	if !ok || state.Store == nil {
		return nil, false
	}
	runs, err := state.Store.SearchRuns(sweepType)
	if err != nil {
		return nil, false
	}
	return runs, true
}

// GetSeries returns one result field's samples for a run.
func (m *Manager) GetSeries(id string, runIndex int, field string, limit int) ([]resultstore.Point, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.sessions[id]
	if !ok || state.Store == nil || state.Measurement == nil {
		return nil, false
	}
	points, err := state.Store.Series(state.Measurement.FileID, runIndex, field, limit)
	if err != nil {
		return nil, false
	}
	return points, true
}

// CloseSession releases a session and its result store.
func (m *Manager) CloseSession(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[id]
	if !ok {
		return false
	}
	if state.Store != nil {
		state.Store.Close()
	}
	delete(m.sessions, id)
	return true
}

// shortID safely truncates an ID for logging.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
