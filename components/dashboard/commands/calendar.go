package commands

import (
	"context"
	"errors"
	"time"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-dashboard/components/calendar"
	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

type eventService interface {
	AddEvent(ctx context.Context, fields calendar.EventFields) (calendar.Event, error)
	UpdateEvent(ctx context.Context, id string, fields calendar.EventFields) (calendar.Event, error)
	DeleteEvent(ctx context.Context, id string) (bool, error)
	MoveEvent(ctx context.Context, id string, start time.Time) (calendar.Event, error)
	ResizeEvent(ctx context.Context, id string, end time.Time) (calendar.Event, error)
}

// AddEventInput schedules a new event.
type AddEventInput struct {
	calendar.EventFields
	Output *calendar.Event `json:"-"`
}

// AddEventCommand wraps Service.AddEvent.
type AddEventCommand struct {
	service   eventService
	telemetry Telemetry
}

// NewAddEventCommand builds the command.
func NewAddEventCommand(service eventService, telemetry Telemetry) *AddEventCommand {
	return &AddEventCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddEventInput] = (*AddEventCommand)(nil)

func (c *AddEventCommand) Execute(ctx context.Context, msg AddEventInput) error {
	if c.service == nil {
		return errors.New("add event command requires service")
	}
	e, err := c.service.AddEvent(ctx, msg.EventFields)
	if err != nil {
		return err
	}
	return finishEvent(ctx, c.telemetry, "add", e, msg.Output)
}

// UpdateEventInput patches an event.
type UpdateEventInput struct {
	ID string `json:"id"`
	calendar.EventFields
	Output *calendar.Event `json:"-"`
}

// UpdateEventCommand wraps Service.UpdateEvent.
type UpdateEventCommand struct {
	service   eventService
	telemetry Telemetry
}

// NewUpdateEventCommand builds the command.
func NewUpdateEventCommand(service eventService, telemetry Telemetry) *UpdateEventCommand {
	return &UpdateEventCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateEventInput] = (*UpdateEventCommand)(nil)

func (c *UpdateEventCommand) Execute(ctx context.Context, msg UpdateEventInput) error {
	if c.service == nil {
		return errors.New("update event command requires service")
	}
	if msg.ID == "" {
		return storeerr.Missing("event", "id")
	}
	e, err := c.service.UpdateEvent(ctx, msg.ID, msg.EventFields)
	if err != nil {
		return err
	}
	return finishEvent(ctx, c.telemetry, "update", e, msg.Output)
}

// DeleteEventInput removes an event. Output reports whether it existed.
type DeleteEventInput struct {
	ID     string `json:"id"`
	Output *bool  `json:"-"`
}

// DeleteEventCommand wraps Service.DeleteEvent.
type DeleteEventCommand struct {
	service   eventService
	telemetry Telemetry
}

// NewDeleteEventCommand builds the command.
func NewDeleteEventCommand(service eventService, telemetry Telemetry) *DeleteEventCommand {
	return &DeleteEventCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteEventInput] = (*DeleteEventCommand)(nil)

func (c *DeleteEventCommand) Execute(ctx context.Context, msg DeleteEventInput) error {
	if c.service == nil {
		return errors.New("delete event command requires service")
	}
	if msg.ID == "" {
		return storeerr.Missing("event", "id")
	}
	deleted, err := c.service.DeleteEvent(ctx, msg.ID)
	if err != nil {
		return err
	}
	if msg.Output != nil {
		*msg.Output = deleted
	}
	c.telemetry.Record(ctx, commandEvent("calendar", "delete"), map[string]any{
		"event_id": msg.ID,
		"deleted":  deleted,
	})
	return nil
}

// MoveEventInput drags an event to a new start, keeping its duration.
type MoveEventInput struct {
	ID     string          `json:"id"`
	Start  time.Time       `json:"start"`
	Output *calendar.Event `json:"-"`
}

// MoveEventCommand wraps Service.MoveEvent.
type MoveEventCommand struct {
	service   eventService
	telemetry Telemetry
}

// NewMoveEventCommand builds the command.
func NewMoveEventCommand(service eventService, telemetry Telemetry) *MoveEventCommand {
	return &MoveEventCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[MoveEventInput] = (*MoveEventCommand)(nil)

func (c *MoveEventCommand) Execute(ctx context.Context, msg MoveEventInput) error {
	if c.service == nil {
		return errors.New("move event command requires service")
	}
	if msg.ID == "" {
		return storeerr.Missing("event", "id")
	}
	if msg.Start.IsZero() {
		return storeerr.Missing("event", "start")
	}
	e, err := c.service.MoveEvent(ctx, msg.ID, msg.Start)
	if err != nil {
		return err
	}
	return finishEvent(ctx, c.telemetry, "move", e, msg.Output)
}

// ResizeEventInput changes an event's end.
type ResizeEventInput struct {
	ID     string          `json:"id"`
	End    time.Time       `json:"end"`
	Output *calendar.Event `json:"-"`
}

// ResizeEventCommand wraps Service.ResizeEvent.
type ResizeEventCommand struct {
	service   eventService
	telemetry Telemetry
}

// NewResizeEventCommand builds the command.
func NewResizeEventCommand(service eventService, telemetry Telemetry) *ResizeEventCommand {
	return &ResizeEventCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResizeEventInput] = (*ResizeEventCommand)(nil)

func (c *ResizeEventCommand) Execute(ctx context.Context, msg ResizeEventInput) error {
	if c.service == nil {
		return errors.New("resize event command requires service")
	}
	if msg.ID == "" {
		return storeerr.Missing("event", "id")
	}
	if msg.End.IsZero() {
		return storeerr.Missing("event", "end")
	}
	e, err := c.service.ResizeEvent(ctx, msg.ID, msg.End)
	if err != nil {
		return err
	}
	return finishEvent(ctx, c.telemetry, "resize", e, msg.Output)
}

func finishEvent(ctx context.Context, telemetry Telemetry, action string, e calendar.Event, out *calendar.Event) error {
	if out != nil {
		*out = e
	}
	telemetry.Record(ctx, commandEvent("calendar", action), map[string]any{
		"event_id": e.ID,
		"type":     string(e.Type),
	})
	return nil
}
