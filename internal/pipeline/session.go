package pipeline

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"coverstudio/internal/credential"
	"coverstudio/internal/domain"
)

// Slot names the two reference-image attachment points.
type Slot string

const (
	SlotPerson Slot = "person"
	SlotLogo   Slot = "logo"
)

// Session holds one user's questionnaire answers, attachments, auth state
// and pipeline status. Sessions are fully isolated from each other; nothing
// is persisted beyond process memory.
type Session struct {
	ID string

	mu     sync.Mutex
	auth   credential.Auth
	form   domain.CoverFormData
	person *domain.ReferenceImage
	logo   *domain.ReferenceImage
	status domain.Status
	result *domain.OptimizationResult
	image  string // data URI of the generated cover
	errMsg string
	busy   bool
}

// State is a read-only snapshot of a session for rendering.
type State struct {
	ID       string                     `json:"id"`
	Status   domain.Status              `json:"status"`
	Form     domain.CoverFormData       `json:"form"`
	LoggedIn bool                       `json:"loggedIn"`
	HasKey   bool                       `json:"hasCustomKey"`
	Person   bool                       `json:"personAttached"`
	Logo     bool                       `json:"logoAttached"`
	Strategy *domain.OptimizationResult `json:"strategy,omitempty"`
	ImageURI string                     `json:"imageUrl,omitempty"`
	Error    string                     `json:"error,omitempty"`
}

func newSession() *Session {
	return &Session{
		ID:     uuid.NewString(),
		form:   domain.DefaultForm(),
		status: domain.StatusIdle,
	}
}

// SetForm replaces the questionnaire answers.
func (s *Session) SetForm(form domain.CoverFormData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = form
}

// Form returns a copy of the current answers.
func (s *Session) Form() domain.CoverFormData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// SetCustomKey stores a user-supplied API key on the session.
func (s *Session) SetCustomKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth.CustomKey = strings.TrimSpace(key)
}

// SetLoggedIn flips the password-authenticated flag. The flag is session
// scoped only and never persisted.
func (s *Session) SetLoggedIn(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth.LoggedIn = v
}

// Auth returns the session's credential context.
func (s *Session) Auth() credential.Auth {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth
}

// Attach stores a reference image in the named slot, replacing any previous
// selection.
func (s *Session) Attach(slot Slot, img *domain.ReferenceImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch slot {
	case SlotPerson:
		s.person = img
	case SlotLogo:
		s.logo = img
	}
}

// Reset returns the session to its initial state, discarding the strategy
// result, the generated image and the login flag. This is the only way back
// to idle.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = domain.DefaultForm()
	s.person = nil
	s.logo = nil
	s.status = domain.StatusIdle
	s.result = nil
	s.image = ""
	s.errMsg = ""
	s.auth = credential.Auth{}
	s.busy = false
}

// Snapshot captures the session for rendering.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:       s.ID,
		Status:   s.status,
		Form:     s.form,
		LoggedIn: s.auth.LoggedIn,
		HasKey:   s.auth.CustomKey != "",
		Person:   s.person != nil,
		Logo:     s.logo != nil,
		Strategy: s.result,
		ImageURI: s.image,
		Error:    s.errMsg,
	}
}

// Store is the in-memory session registry. Each entry is independent; there
// is no cross-session shared mutable state.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a fresh session and returns it.
func (st *Store) Create() *Session {
	s := newSession()
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get looks a session up by ID.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	return s, ok
}

// Delete removes a session entirely.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
