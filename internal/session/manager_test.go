package session

import (
	"strings"
	"testing"
	"time"

	"github.com/lab-visualizer/backend/internal/models"
	"github.com/lab-visualizer/backend/internal/parser"
	"github.com/lab-visualizer/backend/internal/seqindex"
	"github.com/lab-visualizer/backend/internal/testutil"
)

const etoDatContent = `[Header]
BYAPP, Electrical Transport Option
[Data]
Temperature (K),Field (Oe),Resistance Ch1 (Ohms)
300,600,1.10
300,500,1.11
300,400,1.12
300,300,1.13
300,200,1.14
300,100,1.15
`

const etoSeqContent = `REM planned sweep
TMP TEMP 300.0 20.0 0
LPB FIELD 600.0 100.0 100.0 6 0 0 1
ENB
`

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(parser.NewRegistry(), t.TempDir())
}

func waitForSession(t *testing.T, m *Manager, id string) *models.ParseSession {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		sess, ok := m.GetSession(id)
		if !ok {
			t.Fatalf("session %s disappeared", id)
		}
		if sess.Status == models.SessionStatusComplete || sess.Status == models.SessionStatusError {
			return sess
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("session %s did not finish in time", id)
	return nil
}

func TestManager_ParseDataFile(t *testing.T) {
	m := newTestManager(t)

	store := testutil.NewMockStorageWithTempDir(t.TempDir())
	store.AddFile("file-1", "sample.dat", []byte(etoDatContent))
	path, err := store.GetFilePath("file-1")
	if err != nil {
		t.Fatalf("GetFilePath: %v", err)
	}

	sess, err := m.StartSession("file-1", path)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if sess.Status != models.SessionStatusParsing {
		t.Errorf("initial status = %s, want parsing", sess.Status)
	}

	done := waitForSession(t, m, sess.ID)
	if done.Status != models.SessionStatusComplete {
		t.Fatalf("status = %s, errors = %+v", done.Status, done.Errors)
	}
	if done.Family != "ETO" {
		t.Errorf("family = %q, want ETO", done.Family)
	}
	if done.RunCount != 1 {
		t.Errorf("run count = %d, want 1", done.RunCount)
	}
	if done.StepCount != 1 {
		t.Errorf("step count = %d, want 1", done.StepCount)
	}

	meas, ok := m.GetMeasurement(sess.ID)
	if !ok {
		t.Fatal("measurement not available after completion")
	}
	if meas.FileID != "file-1" {
		t.Errorf("measurement file ID = %q", meas.FileID)
	}
	if meas.StepsFromSequence {
		t.Error("StepsFromSequence = true without a companion sequence file")
	}
}

func TestManager_ParseWithCompanionSequence(t *testing.T) {
	m := newTestManager(t)

	store := testutil.NewMockStorageWithTempDir(t.TempDir())
	store.AddFile("file-1", "sample.dat", []byte(etoDatContent))
	store.AddFile("file-2", "sample.seq", []byte(etoSeqContent))
	m.WithFileSource(store, seqindex.Options{
		Interval: 10 * time.Millisecond,
		Budget:   time.Second,
	})

	path, err := store.GetFilePath("file-1")
	if err != nil {
		t.Fatalf("GetFilePath: %v", err)
	}
	sess, err := m.StartSession("file-1", path)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	done := waitForSession(t, m, sess.ID)
	if done.Status != models.SessionStatusComplete {
		t.Fatalf("status = %s, errors = %+v", done.Status, done.Errors)
	}
	if done.SequenceFileID != "file-2" {
		t.Errorf("sequence file ID = %q, want file-2", done.SequenceFileID)
	}
	if done.StepCount != 4 {
		t.Errorf("step count = %d, want 4 sequence steps", done.StepCount)
	}

	meas, _ := m.GetMeasurement(sess.ID)
	if !meas.StepsFromSequence {
		t.Error("StepsFromSequence = false with a companion sequence file")
	}
}

func TestManager_ParseErrorReported(t *testing.T) {
	m := newTestManager(t)

	store := testutil.NewMockStorageWithTempDir(t.TempDir())
	store.AddFile("file-1", "garbage.bin", []byte("nothing any parser accepts\nreally nothing\n"))
	path, _ := store.GetFilePath("file-1")

	sess, err := m.StartSession("file-1", path)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	done := waitForSession(t, m, sess.ID)
	if done.Status != models.SessionStatusError {
		t.Fatalf("status = %s, want error", done.Status)
	}
	if len(done.Errors) == 0 {
		t.Fatal("expected an error entry")
	}
	if !strings.Contains(done.Errors[0].Reason, "parser") {
		t.Errorf("error reason = %q", done.Errors[0].Reason)
	}

	if _, ok := m.GetMeasurement(sess.ID); ok {
		t.Error("measurement available for a failed session")
	}
}

func TestManager_SessionLifecycle(t *testing.T) {
	m := newTestManager(t)

	if _, ok := m.GetSession("nope"); ok {
		t.Error("GetSession found an unknown session")
	}
	if m.TouchSession("nope") {
		t.Error("TouchSession succeeded for an unknown session")
	}
	if m.CloseSession("nope") {
		t.Error("CloseSession succeeded for an unknown session")
	}

	store := testutil.NewMockStorageWithTempDir(t.TempDir())
	store.AddFile("file-1", "sample.dat", []byte(etoDatContent))
	path, _ := store.GetFilePath("file-1")

	sess, err := m.StartSession("file-1", path)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	waitForSession(t, m, sess.ID)

	if !m.TouchSession(sess.ID) {
		t.Error("TouchSession failed for a live session")
	}
	if !m.CloseSession(sess.ID) {
		t.Error("CloseSession failed for a live session")
	}
	if _, ok := m.GetSession(sess.ID); ok {
		t.Error("session still present after CloseSession")
	}
}

func TestManager_CleanupOldSessions(t *testing.T) {
	m := newTestManager(t)

	store := testutil.NewMockStorageWithTempDir(t.TempDir())
	store.AddFile("file-1", "sample.dat", []byte(etoDatContent))
	path, _ := store.GetFilePath("file-1")

	sess, err := m.StartSession("file-1", path)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	waitForSession(t, m, sess.ID)

	// recently accessed sessions survive even past the age cutoff
	m.CleanupOldSessions(0)
	if _, ok := m.GetSession(sess.ID); !ok {
		t.Fatal("recently accessed session was cleaned up")
	}

	// age it past both windows
	m.mu.Lock()
	m.sessions[sess.ID].LastAccessed = time.Now().Add(-time.Hour)
	m.mu.Unlock()

	m.CleanupOldSessions(30 * time.Minute)
	if _, ok := m.GetSession(sess.ID); ok {
		t.Error("aged session survived cleanup")
	}
}
