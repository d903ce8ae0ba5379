package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"

	"complaintbox/internal/client/store"
)

// keyItems is the single slot holding the serialized ledger.
const keyItems = "complaintItems"

// ErrEmptyEntry rejects an entry carrying neither image nor audio.
var ErrEmptyEntry = errors.New("entry needs an image or an audio recording")

// ErrIndexOutOfRange rejects a remove/share position past the end.
var ErrIndexOutOfRange = errors.New("no entry at that position")

// Entry is one complaint record. Entries are immutable once created;
// the only mutation is whole-entry deletion.
type Entry struct {
	Image     string    `json:"image,omitempty"`
	AudioURI  string    `json:"audioUri,omitempty"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is the locally persisted, newest-first complaint ledger. Every
// mutation rewrites the whole serialized list, so a crash between the
// in-memory update and the persist call loses one mutation but never
// leaves a half-written blob.
type Store struct {
	kv      *store.Bolt
	logger  *slog.Logger
	entries []Entry
}

// NewStore creates a ledger over kv and loads the persisted list. An
// unreadable blob is logged and treated as an empty ledger.
func NewStore(kv *store.Bolt, logger *slog.Logger) *Store {
	s := &Store{kv: kv, logger: logger}
	s.entries = s.load()
	return s
}

// Entries returns the current ordered sequence, newest first.
func (s *Store) Entries() []Entry {
	return s.entries
}

// Append validates the entry, prepends it, and persists the whole
// sequence.
func (s *Store) Append(entry Entry) error {
	if entry.Image == "" && entry.AudioURI == "" {
		return ErrEmptyEntry
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	updated := append([]Entry{entry}, s.entries...)
	if err := s.persist(updated); err != nil {
		return err
	}
	s.entries = updated
	return nil
}

// Remove deletes the entry at index and persists the remaining
// sequence; relative order of the others is preserved.
func (s *Store) Remove(index int) error {
	if index < 0 || index >= len(s.entries) {
		return ErrIndexOutOfRange
	}

	updated := lo.Reject(s.entries, func(_ Entry, i int) bool {
		return i == index
	})
	if err := s.persist(updated); err != nil {
		return err
	}
	s.entries = updated
	return nil
}

// Share renders the entry at index as shareable text.
func (s *Store) Share(index int) (string, error) {
	if index < 0 || index >= len(s.entries) {
		return "", ErrIndexOutOfRange
	}

	e := s.entries[index]
	var b strings.Builder
	b.WriteString("Complaint")
	if e.Caption != "" {
		b.WriteString(": " + e.Caption)
	}
	b.WriteString("\n")
	if e.Image != "" {
		fmt.Fprintf(&b, "photo: %s\n", e.Image)
	}
	if e.AudioURI != "" {
		fmt.Fprintf(&b, "audio: %s\n", e.AudioURI)
	}
	fmt.Fprintf(&b, "recorded: %s\n", e.CreatedAt.Format(time.RFC1123))
	return b.String(), nil
}

func (s *Store) load() []Entry {
	data, err := s.kv.Get(keyItems)
	if err != nil {
		s.logger.Warn("failed to read ledger", "error", err)
		return []Entry{}
	}
	if data == nil {
		return []Entry{}
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// Parse failure is non-fatal: start over with an empty list.
		s.logger.Warn("stored ledger is unreadable, starting empty", "error", err)
		return []Entry{}
	}
	return entries
}

func (s *Store) persist(entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to serialize ledger: %w", err)
	}
	return s.kv.Put(keyItems, data)
}
