package session

import (
	"encoding/json"
	"log/slog"
	"sync"

	"complaintbox/internal/client/store"
)

// Storage keys, one value each.
const (
	keyToken      = "userToken"
	keyUser       = "userData"
	keyOnboarding = "onboardingSeen"
	keyDarkTheme  = "isDarkTheme"
)

// User is the cached mirror of the server-side identity.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AppState is the process-wide client state: credential, cached user,
// onboarding flag, and theme preference. It is an explicit object
// handed to commands rather than an ambient global; theme consumers
// subscribe instead of polling.
type AppState struct {
	kv     *store.Bolt
	logger *slog.Logger

	mu        sync.Mutex
	token     string
	user      *User
	dark      bool
	onboarded bool
	themeSubs []func(dark bool)
}

// Load reads all persisted state once at startup. Unreadable values
// fall back to their zero state; nothing here is fatal.
func Load(kv *store.Bolt, logger *slog.Logger) *AppState {
	s := &AppState{kv: kv, logger: logger}

	if data, err := kv.Get(keyToken); err == nil && data != nil {
		s.token = string(data)
	}
	if data, err := kv.Get(keyUser); err == nil && data != nil {
		var u User
		if err := json.Unmarshal(data, &u); err != nil {
			logger.Warn("stored user profile is unreadable", "error", err)
		} else {
			s.user = &u
		}
	}
	s.dark = s.loadBool(keyDarkTheme)
	s.onboarded = s.loadBool(keyOnboarding)

	return s
}

// Authenticated reports whether a credential is present. It decides
// the initial navigation: sign-in screen or main screen.
func (s *AppState) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Session returns the stored token and cached user; user may be nil.
func (s *AppState) Session() (string, *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.user
}

// SetSession stores a fresh credential and profile after login or
// registration.
func (s *AppState) SetSession(token string, user User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.kv.Put(keyToken, []byte(token)); err != nil {
		return err
	}
	if err := s.kv.Put(keyUser, data); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	return nil
}

// ClearSession removes the credential and profile at logout.
func (s *AppState) ClearSession() error {
	if err := s.kv.Delete(keyToken); err != nil {
		return err
	}
	if err := s.kv.Delete(keyUser); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	return nil
}

// Dark returns the persisted theme flag. Styling only; no behavioral
// effect.
func (s *AppState) Dark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// SetDark persists the theme flag and notifies subscribers.
func (s *AppState) SetDark(dark bool) error {
	if err := s.putBool(keyDarkTheme, dark); err != nil {
		return err
	}

	s.mu.Lock()
	s.dark = dark
	subs := append([]func(bool){}, s.themeSubs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(dark)
	}
	return nil
}

// SubscribeTheme registers fn to run on every theme change.
func (s *AppState) SubscribeTheme(fn func(dark bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themeSubs = append(s.themeSubs, fn)
}

// OnboardingSeen reports whether the onboarding flow has completed.
func (s *AppState) OnboardingSeen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onboarded
}

// MarkOnboardingSeen persists the onboarding flag.
func (s *AppState) MarkOnboardingSeen() error {
	if err := s.putBool(keyOnboarding, true); err != nil {
		return err
	}
	s.mu.Lock()
	s.onboarded = true
	s.mu.Unlock()
	return nil
}

func (s *AppState) loadBool(key string) bool {
	data, err := s.kv.Get(key)
	if err != nil || data == nil {
		return false
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		s.logger.Warn("stored flag is unreadable", "key", key, "error", err)
		return false
	}
	return v
}

func (s *AppState) putBool(key string, v bool) error {
	data, _ := json.Marshal(v)
	return s.kv.Put(key, data)
}
