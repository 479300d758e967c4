// Package settings keeps per-user profile, notification and appearance
// preferences.
package settings

import (
	"strings"
	"sync"

	"github.com/goliatone/go-admin-dashboard/components/display"
	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

const entity = "settings"

// Mode is the appearance mode.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

func (m Mode) Valid() bool { return m == ModeLight || m == ModeDark }

// Channel names a notification channel.
type Channel string

const (
	ChannelEmail     Channel = "email"
	ChannelPush      Channel = "push"
	ChannelSMS       Channel = "sms"
	ChannelMarketing Channel = "marketing"
)

// Channels lists the known notification channels.
func Channels() []Channel {
	return []Channel{ChannelEmail, ChannelPush, ChannelSMS, ChannelMarketing}
}

type Profile struct {
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	Role   string `json:"role" yaml:"role"`
	Avatar string `json:"avatar" yaml:"-"`
}

type ProfileFields struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

type Notifications struct {
	Email     bool `json:"email" yaml:"email"`
	Push      bool `json:"push" yaml:"push"`
	SMS       bool `json:"sms" yaml:"sms"`
	Marketing bool `json:"marketing" yaml:"marketing"`
}

type Appearance struct {
	Mode Mode `json:"mode" yaml:"mode"`
}

// Settings groups everything stored for one user.
type Settings struct {
	Profile       Profile       `json:"profile" yaml:"profile"`
	Notifications Notifications `json:"notifications" yaml:"notifications"`
	Appearance    Appearance    `json:"appearance" yaml:"appearance"`
}

// Defaults returns the settings a user starts with.
func Defaults() Settings {
	return Settings{
		Profile: Profile{
			Name:   "John Doe",
			Email:  "john.doe@example.com",
			Role:   "Administrator",
			Avatar: "JD",
		},
		Notifications: Notifications{Email: true, Marketing: true},
		Appearance:    Appearance{Mode: ModeLight},
	}
}

// Store is an in-memory, concurrency-safe settings store keyed by user id.
type Store struct {
	mu   sync.RWMutex
	data map[string]Settings
}

func NewStore() *Store {
	return &Store{data: make(map[string]Settings)}
}

// Get returns the stored settings or Defaults when the user has none.
func (s *Store) Get(userID string) Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if stored, ok := s.data[userID]; ok {
		return stored
	}
	return Defaults()
}

// All returns a copy of every stored user's settings.
func (s *Store) All() map[string]Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Settings, len(s.data))
	for id, st := range s.data {
		out[id] = st
	}
	return out
}

// Put replaces the settings for a user.
func (s *Store) Put(userID string, settings Settings) error {
	if userID == "" {
		return storeerr.Missing(entity, "user_id")
	}
	if settings.Appearance.Mode == "" {
		settings.Appearance.Mode = ModeLight
	}
	if !settings.Appearance.Mode.Valid() {
		return storeerr.Invalid(entity, "mode", "unknown mode "+string(settings.Appearance.Mode))
	}
	if err := validateProfile(settings.Profile); err != nil {
		return err
	}
	settings.Profile.Avatar = display.Initials(settings.Profile.Name)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = settings
	return nil
}

// UpdateProfile merges fields into the user's profile. Name and email stay
// required and the avatar initials follow the name.
func (s *Store) UpdateProfile(userID string, fields ProfileFields) (Profile, error) {
	var out Profile
	err := s.mutate(userID, func(st *Settings) error {
		p := st.Profile
		if fields.Name != nil {
			p.Name = strings.TrimSpace(*fields.Name)
		}
		if fields.Email != nil {
			p.Email = strings.TrimSpace(*fields.Email)
		}
		if fields.Role != nil {
			p.Role = strings.TrimSpace(*fields.Role)
		}
		if err := validateProfile(p); err != nil {
			return err
		}
		p.Avatar = display.Initials(p.Name)
		st.Profile = p
		out = p
		return nil
	})
	return out, err
}

// SetNotification turns a channel on or off.
func (s *Store) SetNotification(userID string, channel Channel, enabled bool) (Notifications, error) {
	var out Notifications
	err := s.mutate(userID, func(st *Settings) error {
		switch Channel(strings.ToLower(strings.TrimSpace(string(channel)))) {
		case ChannelEmail:
			st.Notifications.Email = enabled
		case ChannelPush:
			st.Notifications.Push = enabled
		case ChannelSMS:
			st.Notifications.SMS = enabled
		case ChannelMarketing:
			st.Notifications.Marketing = enabled
		default:
			return storeerr.Invalid(entity, "channel", "unknown channel "+string(channel))
		}
		out = st.Notifications
		return nil
	})
	return out, err
}

// ToggleTheme flips between light and dark and returns the new mode.
func (s *Store) ToggleTheme(userID string) (Mode, error) {
	var out Mode
	err := s.mutate(userID, func(st *Settings) error {
		if st.Appearance.Mode == ModeDark {
			st.Appearance.Mode = ModeLight
		} else {
			st.Appearance.Mode = ModeDark
		}
		out = st.Appearance.Mode
		return nil
	})
	return out, err
}

func (s *Store) SetTheme(userID string, mode Mode) error {
	if !mode.Valid() {
		return storeerr.Invalid(entity, "mode", "unknown mode "+string(mode))
	}
	return s.mutate(userID, func(st *Settings) error {
		st.Appearance.Mode = mode
		return nil
	})
}

func (s *Store) mutate(userID string, fn func(*Settings) error) error {
	if userID == "" {
		return storeerr.Missing(entity, "user_id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.data[userID]
	if !ok {
		current = Defaults()
	}
	if err := fn(&current); err != nil {
		return err
	}
	s.data[userID] = current
	return nil
}

func validateProfile(p Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return storeerr.Missing(entity, "name")
	}
	if strings.TrimSpace(p.Email) == "" {
		return storeerr.Missing(entity, "email")
	}
	if !strings.Contains(p.Email, "@") {
		return storeerr.Invalid(entity, "email", "must contain @")
	}
	return nil
}
