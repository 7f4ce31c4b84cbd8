package pipeline

import (
	"testing"

	"coverstudio/internal/domain"
)

func TestStoreCreateGetDelete(t *testing.T) {
	store := NewStore()
	s := store.Create()
	if s.ID == "" {
		t.Fatal("expected a generated session ID")
	}
	got, ok := store.Get(s.ID)
	if !ok || got != s {
		t.Fatalf("Get(%q) = %v, %v", s.ID, got, ok)
	}
	store.Delete(s.ID)
	if _, ok := store.Get(s.ID); ok {
		t.Fatal("session still present after Delete")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	store := NewStore()
	a := store.Create()
	b := store.Create()
	a.SetCustomKey("key-a")
	if b.Auth().CustomKey != "" {
		t.Fatal("custom key leaked between sessions")
	}
}

func TestSnapshotReflectsAttachments(t *testing.T) {
	s := NewStore().Create()
	state := s.Snapshot()
	if state.Status != domain.StatusIdle || state.Person || state.Logo {
		t.Fatalf("fresh snapshot = %+v", state)
	}
	s.Attach(SlotPerson, &domain.ReferenceImage{MimeType: "image/jpeg", Data: "cGVyc29u"})
	if !s.Snapshot().Person {
		t.Fatal("person attachment not reflected")
	}
}

func TestCustomKeyTrimmed(t *testing.T) {
	s := NewStore().Create()
	s.SetCustomKey("  padded-key \n")
	if got := s.Auth().CustomKey; got != "padded-key" {
		t.Fatalf("CustomKey = %q", got)
	}
}

func TestResetReturnsToInitialState(t *testing.T) {
	s := NewStore().Create()
	form := s.Form()
	form.MainTitle = "changed"
	s.SetForm(form)
	s.SetLoggedIn(true)
	s.SetCustomKey("k")
	s.Attach(SlotLogo, &domain.ReferenceImage{MimeType: "image/png", Data: "bG9nbw=="})
	s.mu.Lock()
	s.status = domain.StatusComplete
	s.result = &domain.OptimizationResult{FinalPrompt: "p"}
	s.image = "data:image/png;base64,eA=="
	s.mu.Unlock()

	s.Reset()

	state := s.Snapshot()
	if state.Status != domain.StatusIdle {
		t.Fatalf("Status = %q, want idle", state.Status)
	}
	if state.Form.MainTitle != domain.DefaultForm().MainTitle {
		t.Fatalf("MainTitle = %q, want default", state.Form.MainTitle)
	}
	if state.LoggedIn || state.HasKey || state.Logo || state.Strategy != nil || state.ImageURI != "" || state.Error != "" {
		t.Fatalf("Reset left residue: %+v", state)
	}
}
