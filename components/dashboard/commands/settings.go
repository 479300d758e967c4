package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-dashboard/components/settings"
	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

type settingsService interface {
	UpdateProfile(ctx context.Context, userID string, fields settings.ProfileFields) (settings.Profile, error)
	SetNotification(ctx context.Context, userID string, channel settings.Channel, enabled bool) (settings.Notifications, error)
	ToggleTheme(ctx context.Context, userID string) (settings.Mode, error)
}

// UpdateProfileInput patches a user's profile.
type UpdateProfileInput struct {
	UserID string `json:"user_id"`
	settings.ProfileFields
	Output *settings.Profile `json:"-"`
}

// UpdateProfileCommand wraps Service.UpdateProfile.
type UpdateProfileCommand struct {
	service   settingsService
	telemetry Telemetry
}

// NewUpdateProfileCommand builds the command.
func NewUpdateProfileCommand(service settingsService, telemetry Telemetry) *UpdateProfileCommand {
	return &UpdateProfileCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateProfileInput] = (*UpdateProfileCommand)(nil)

func (c *UpdateProfileCommand) Execute(ctx context.Context, msg UpdateProfileInput) error {
	if c.service == nil {
		return errors.New("profile command requires service")
	}
	if msg.UserID == "" {
		return storeerr.Missing("settings", "user_id")
	}
	profile, err := c.service.UpdateProfile(ctx, msg.UserID, msg.ProfileFields)
	if err != nil {
		return err
	}
	if msg.Output != nil {
		*msg.Output = profile
	}
	c.telemetry.Record(ctx, commandEvent("settings", "profile"), map[string]any{"user_id": msg.UserID})
	return nil
}

// SetNotificationInput switches one notification channel.
type SetNotificationInput struct {
	UserID  string                  `json:"user_id"`
	Channel settings.Channel        `json:"channel"`
	Enabled bool                    `json:"enabled"`
	Output  *settings.Notifications `json:"-"`
}

// SetNotificationCommand wraps Service.SetNotification.
type SetNotificationCommand struct {
	service   settingsService
	telemetry Telemetry
}

// NewSetNotificationCommand builds the command.
func NewSetNotificationCommand(service settingsService, telemetry Telemetry) *SetNotificationCommand {
	return &SetNotificationCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetNotificationInput] = (*SetNotificationCommand)(nil)

func (c *SetNotificationCommand) Execute(ctx context.Context, msg SetNotificationInput) error {
	if c.service == nil {
		return errors.New("notification command requires service")
	}
	if msg.UserID == "" {
		return storeerr.Missing("settings", "user_id")
	}
	n, err := c.service.SetNotification(ctx, msg.UserID, msg.Channel, msg.Enabled)
	if err != nil {
		return err
	}
	if msg.Output != nil {
		*msg.Output = n
	}
	c.telemetry.Record(ctx, commandEvent("settings", "notification"), map[string]any{
		"user_id": msg.UserID,
		"channel": string(msg.Channel),
		"enabled": msg.Enabled,
	})
	return nil
}

// ToggleThemeInput flips a user's light/dark preference. Output receives the
// new mode.
type ToggleThemeInput struct {
	UserID string         `json:"user_id"`
	Output *settings.Mode `json:"-"`
}

// ToggleThemeCommand wraps Service.ToggleTheme.
type ToggleThemeCommand struct {
	service   settingsService
	telemetry Telemetry
}

// NewToggleThemeCommand builds the command.
func NewToggleThemeCommand(service settingsService, telemetry Telemetry) *ToggleThemeCommand {
	return &ToggleThemeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleThemeInput] = (*ToggleThemeCommand)(nil)

func (c *ToggleThemeCommand) Execute(ctx context.Context, msg ToggleThemeInput) error {
	if c.service == nil {
		return errors.New("theme command requires service")
	}
	if msg.UserID == "" {
		return storeerr.Missing("settings", "user_id")
	}
	mode, err := c.service.ToggleTheme(ctx, msg.UserID)
	if err != nil {
		return err
	}
	if msg.Output != nil {
		*msg.Output = mode
	}
	c.telemetry.Record(ctx, commandEvent("settings", "theme"), map[string]any{
		"user_id": msg.UserID,
		"mode":    string(mode),
	})
	return nil
}
