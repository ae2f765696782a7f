package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
)

func TestTableSetGet(t *testing.T) {
	dir := t.TempDir()

	table, err := NewTable[models.UserAccount](dir, "users")
	if err != nil {
		t.Fatalf("NewTable() returned error: %v", err)
	}

	acc := models.UserAccount{UserID: "123", Points: 40}
	if err := table.Set("123", acc); err != nil {
		t.Fatalf("Set() returned error: %v", err)
	}

	got, ok := table.Get("123")
	if !ok {
		t.Fatal("Get() did not find stored entry")
	}
	if got.Points != 40 {
		t.Errorf("Points = %v, want %v", got.Points, 40)
	}

	if _, ok := table.Get("missing"); ok {
		t.Error("Get() found entry that was never stored")
	}
}

func TestTablePersistence(t *testing.T) {
	dir := t.TempDir()

	table, err := NewTable[models.UserAccount](dir, "users")
	if err != nil {
		t.Fatalf("NewTable() returned error: %v", err)
	}
	if err := table.Set("42", models.UserAccount{UserID: "42", Points: 10}); err != nil {
		t.Fatalf("Set() returned error: %v", err)
	}

	// Reopen the same file and check the entry survived
	reopened, err := NewTable[models.UserAccount](dir, "users")
	if err != nil {
		t.Fatalf("NewTable() on reopen returned error: %v", err)
	}

	got, ok := reopened.Get("42")
	if !ok {
		t.Fatal("Entry did not survive reopen")
	}
	if got.Points != 10 {
		t.Errorf("Points after reopen = %v, want %v", got.Points, 10)
	}
}

func TestTableCorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "users.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile() returned error: %v", err)
	}

	table, err := NewTable[models.UserAccount](dir, "users")
	if err != nil {
		t.Fatalf("NewTable() on corrupt file returned error: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("Len() = %v, want 0 for corrupt file", table.Len())
	}
}

func TestTableDelete(t *testing.T) {
	dir := t.TempDir()

	table, _ := NewTable[models.UserAccount](dir, "users")
	table.Set("a", models.UserAccount{UserID: "a"})

	if err := table.Delete("a"); err != nil {
		t.Fatalf("Delete() returned error: %v", err)
	}
	if _, ok := table.Get("a"); ok {
		t.Error("Entry still present after Delete()")
	}

	// Deleting a missing key must not error
	if err := table.Delete("missing"); err != nil {
		t.Errorf("Delete() of missing key returned error: %v", err)
	}
}

func TestTableUpdate(t *testing.T) {
	dir := t.TempDir()

	table, _ := NewTable[models.UserAccount](dir, "users")
	table.Set("u", models.UserAccount{UserID: "u", Points: 5})

	err := table.Update("u", func(acc models.UserAccount, exists bool) (models.UserAccount, error) {
		if !exists {
			t.Error("Update() callback reported missing entry")
		}
		acc.Points += 10
		return acc, nil
	})
	if err != nil {
		t.Fatalf("Update() returned error: %v", err)
	}

	got, _ := table.Get("u")
	if got.Points != 15 {
		t.Errorf("Points after Update() = %v, want %v", got.Points, 15)
	}

	// An error from the callback must abort without persisting
	wantErr := errors.New("rejected")
	err = table.Update("u", func(acc models.UserAccount, exists bool) (models.UserAccount, error) {
		acc.Points = 999
		return acc, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Update() error = %v, want %v", err, wantErr)
	}

	got, _ = table.Get("u")
	if got.Points != 15 {
		t.Errorf("Points after aborted Update() = %v, want %v", got.Points, 15)
	}
}

func TestTableReplace(t *testing.T) {
	dir := t.TempDir()

	table, _ := NewTable[models.InviteSnapshot](dir, "inv_cache")
	table.Set("guild1", models.InviteSnapshot{"code1": {Uses: 1, InviterID: "u1"}})

	snapshot := models.InviteSnapshot{"code2": {Uses: 5, InviterID: "u2"}}
	if err := table.Replace(map[string]models.InviteSnapshot{"guild2": snapshot}); err != nil {
		t.Fatalf("Replace() returned error: %v", err)
	}

	if _, ok := table.Get("guild1"); ok {
		t.Error("Replace() kept old entry")
	}
	got, ok := table.Get("guild2")
	if !ok {
		t.Fatal("Replace() did not store new entry")
	}
	if got["code2"].Uses != 5 {
		t.Errorf("Uses = %v, want %v", got["code2"].Uses, 5)
	}
}

func TestDocument(t *testing.T) {
	dir := t.TempDir()

	doc, err := NewDocument(dir, "config", models.EngineConfig{RenewMode: "15"})
	if err != nil {
		t.Fatalf("NewDocument() returned error: %v", err)
	}

	cfg := doc.Get()
	if cfg.RenewMode != "15" {
		t.Errorf("RenewMode initial = %v, want %v", cfg.RenewMode, "15")
	}

	cfg.LogChannelID = "chan1"
	cfg.AdminIDs = []string{"admin1"}
	if err := doc.Set(cfg); err != nil {
		t.Fatalf("Set() returned error: %v", err)
	}

	// Reopen and verify persistence
	reopened, err := NewDocument(dir, "config", models.EngineConfig{})
	if err != nil {
		t.Fatalf("NewDocument() on reopen returned error: %v", err)
	}
	got := reopened.Get()
	if got.LogChannelID != "chan1" {
		t.Errorf("LogChannelID after reopen = %v, want %v", got.LogChannelID, "chan1")
	}
}

func TestAppendActivityBounded(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() returned error: %v", err)
	}

	for i := 0; i < maxActivityEvents+50; i++ {
		event := models.ActivityEvent{
			Timestamp: time.Now(),
			Action:    "deploy",
			Actor:     "user1",
		}
		if err := s.AppendActivity(event); err != nil {
			t.Fatalf("AppendActivity() returned error: %v", err)
		}
	}

	events := s.Activity.Get()
	if len(events) != maxActivityEvents {
		t.Errorf("len(events) = %v, want %v", len(events), maxActivityEvents)
	}
}
