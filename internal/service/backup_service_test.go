package service

import (
	"bytes"
	"strings"
	"testing"

	"vocabdeck/internal/deck"
	"vocabdeck/internal/storage"
)

func TestBackupRoundTrip(t *testing.T) {
	source := deck.NewStore(storage.NewMemoryStore())
	folder, _ := source.AddFolder("kanji", "jlpt n3")
	source.AddCard("猫", "cat", folder.ID)
	source.AddCard("犬", "dog", folder.ID)

	var buf bytes.Buffer
	if err := NewBackupService(source).Export(&buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	target := deck.NewStore(storage.NewMemoryStore())
	folders, cards, err := NewBackupService(target).Import(&buf)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if folders != 2 || cards != 2 {
		t.Errorf("Import() = (%d folders, %d cards), want (2, 2)", folders, cards)
	}

	restored := target.CardsInFolder(folder.ID)
	if len(restored) != 2 {
		t.Fatalf("restored folder has %d cards, want 2", len(restored))
	}
	if restored[0].Term != "猫" || restored[0].Definition != "cat" {
		t.Errorf("restored card = %+v, want original content", restored[0])
	}
}

func TestImportRejectsNonBackupJSON(t *testing.T) {
	store := deck.NewStore(storage.NewMemoryStore())
	svc := NewBackupService(store)

	if _, _, err := svc.Import(strings.NewReader(`{"cards": []}`)); err == nil {
		t.Error("Import() should reject JSON without a version tag")
	}
	if _, _, err := svc.Import(strings.NewReader("not json")); err == nil {
		t.Error("Import() should reject malformed JSON")
	}
}

func TestImportDropsOrphanCards(t *testing.T) {
	source := deck.NewStore(storage.NewMemoryStore())
	folder, _ := source.AddFolder("kanji", "")
	source.AddCard("猫", "cat", folder.ID)

	var buf bytes.Buffer
	NewBackupService(source).Export(&buf)

	// corrupt the backup: point a card at a folder that doesn't exist
	corrupted := strings.Replace(buf.String(), folder.ID, "missing-folder", 1)

	target := deck.NewStore(storage.NewMemoryStore())
	if _, _, err := NewBackupService(target).Import(strings.NewReader(corrupted)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if got := len(target.CardsInFolder("missing-folder")); got != 0 {
		t.Errorf("orphan cards restored: %d", got)
	}
}
