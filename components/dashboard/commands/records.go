package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-dashboard/components/records"
	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

// SetRecordFilterInput replaces the data view filters.
type SetRecordFilterInput struct {
	Search string `json:"search"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

type filterService interface {
	SetRecordFilter(ctx context.Context, filter records.Filter) error
}

// SetRecordFilterCommand wraps Service.SetRecordFilter.
type SetRecordFilterCommand struct {
	service   filterService
	telemetry Telemetry
}

// NewSetRecordFilterCommand builds the command.
func NewSetRecordFilterCommand(service filterService, telemetry Telemetry) *SetRecordFilterCommand {
	return &SetRecordFilterCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetRecordFilterInput] = (*SetRecordFilterCommand)(nil)

func (c *SetRecordFilterCommand) Execute(ctx context.Context, msg SetRecordFilterInput) error {
	if c.service == nil {
		return errors.New("filter command requires service")
	}
	filter := records.Filter{Search: msg.Search, Role: msg.Role, Status: msg.Status}
	if err := c.service.SetRecordFilter(ctx, filter); err != nil {
		return err
	}
	c.telemetry.Record(ctx, commandEvent("records", "filter"), map[string]any{
		"search": msg.Search != "",
	})
	return nil
}

// SortRecordsInput selects the sort key and direction. Direction defaults to
// ascending.
type SortRecordsInput struct {
	Key       records.SortKey   `json:"key"`
	Direction records.Direction `json:"direction"`
}

type sortService interface {
	SortRecords(ctx context.Context, key records.SortKey, direction records.Direction) error
}

// SortRecordsCommand wraps Service.SortRecords.
type SortRecordsCommand struct {
	service   sortService
	telemetry Telemetry
}

// NewSortRecordsCommand builds the command.
func NewSortRecordsCommand(service sortService, telemetry Telemetry) *SortRecordsCommand {
	return &SortRecordsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SortRecordsInput] = (*SortRecordsCommand)(nil)

func (c *SortRecordsCommand) Execute(ctx context.Context, msg SortRecordsInput) error {
	if c.service == nil {
		return errors.New("sort command requires service")
	}
	if msg.Direction == "" {
		msg.Direction = records.Asc
	}
	if err := c.service.SortRecords(ctx, msg.Key, msg.Direction); err != nil {
		return err
	}
	c.telemetry.Record(ctx, commandEvent("records", "sort"), map[string]any{
		"key":       string(msg.Key),
		"direction": string(msg.Direction),
	})
	return nil
}

// ToggleRecordSelectionInput names the record to toggle.
type ToggleRecordSelectionInput struct {
	ID int `json:"id"`
}

type selectService interface {
	ToggleRecordSelection(ctx context.Context, id int) error
	SelectAllRecords(ctx context.Context, selected bool) error
}

// ToggleRecordSelectionCommand wraps Service.ToggleRecordSelection.
type ToggleRecordSelectionCommand struct {
	service   selectService
	telemetry Telemetry
}

// NewToggleRecordSelectionCommand builds the command.
func NewToggleRecordSelectionCommand(service selectService, telemetry Telemetry) *ToggleRecordSelectionCommand {
	return &ToggleRecordSelectionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleRecordSelectionInput] = (*ToggleRecordSelectionCommand)(nil)

func (c *ToggleRecordSelectionCommand) Execute(ctx context.Context, msg ToggleRecordSelectionInput) error {
	if c.service == nil {
		return errors.New("select command requires service")
	}
	if msg.ID <= 0 {
		return storeerr.Missing("record", "id")
	}
	if err := c.service.ToggleRecordSelection(ctx, msg.ID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, commandEvent("records", "select"), map[string]any{"id": msg.ID})
	return nil
}

// SelectAllRecordsInput selects every visible record or clears the selection.
type SelectAllRecordsInput struct {
	Selected bool `json:"selected"`
}

// SelectAllRecordsCommand wraps Service.SelectAllRecords.
type SelectAllRecordsCommand struct {
	service   selectService
	telemetry Telemetry
}

// NewSelectAllRecordsCommand builds the command.
func NewSelectAllRecordsCommand(service selectService, telemetry Telemetry) *SelectAllRecordsCommand {
	return &SelectAllRecordsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectAllRecordsInput] = (*SelectAllRecordsCommand)(nil)

func (c *SelectAllRecordsCommand) Execute(ctx context.Context, msg SelectAllRecordsInput) error {
	if c.service == nil {
		return errors.New("select all command requires service")
	}
	if err := c.service.SelectAllRecords(ctx, msg.Selected); err != nil {
		return err
	}
	c.telemetry.Record(ctx, commandEvent("records", "select_all"), map[string]any{"selected": msg.Selected})
	return nil
}

// AddRecordInput carries the new record. The stored record is written to
// Output when set.
type AddRecordInput struct {
	records.RecordFields
	Output *records.Record `json:"-"`
}

type addRecordService interface {
	AddRecord(ctx context.Context, fields records.RecordFields) (records.Record, error)
}

// AddRecordCommand wraps Service.AddRecord.
type AddRecordCommand struct {
	service   addRecordService
	telemetry Telemetry
}

// NewAddRecordCommand builds the command.
func NewAddRecordCommand(service addRecordService, telemetry Telemetry) *AddRecordCommand {
	return &AddRecordCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddRecordInput] = (*AddRecordCommand)(nil)

func (c *AddRecordCommand) Execute(ctx context.Context, msg AddRecordInput) error {
	if c.service == nil {
		return errors.New("add record command requires service")
	}
	r, err := c.service.AddRecord(ctx, msg.RecordFields)
	if err != nil {
		return err
	}
	if msg.Output != nil {
		*msg.Output = r
	}
	c.telemetry.Record(ctx, commandEvent("records", "add"), map[string]any{"id": r.ID})
	return nil
}

// UpdateRecordInput patches one record.
type UpdateRecordInput struct {
	ID int `json:"id"`
	records.RecordFields
	Output *records.Record `json:"-"`
}

type updateRecordService interface {
	UpdateRecord(ctx context.Context, id int, fields records.RecordFields) (records.Record, error)
}

// UpdateRecordCommand wraps Service.UpdateRecord.
type UpdateRecordCommand struct {
	service   updateRecordService
	telemetry Telemetry
}

// NewUpdateRecordCommand builds the command.
func NewUpdateRecordCommand(service updateRecordService, telemetry Telemetry) *UpdateRecordCommand {
	return &UpdateRecordCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateRecordInput] = (*UpdateRecordCommand)(nil)

func (c *UpdateRecordCommand) Execute(ctx context.Context, msg UpdateRecordInput) error {
	if c.service == nil {
		return errors.New("update record command requires service")
	}
	if msg.ID <= 0 {
		return storeerr.Missing("record", "id")
	}
	r, err := c.service.UpdateRecord(ctx, msg.ID, msg.RecordFields)
	if err != nil {
		return err
	}
	if msg.Output != nil {
		*msg.Output = r
	}
	c.telemetry.Record(ctx, commandEvent("records", "update"), map[string]any{"id": r.ID})
	return nil
}

// DeleteRecordsInput removes the listed ids, or the current selection when
// Selected is set. Output receives the number of records removed.
type DeleteRecordsInput struct {
	IDs      []int `json:"ids"`
	Selected bool  `json:"selected"`
	Output   *int  `json:"-"`
}

type deleteRecordsService interface {
	DeleteRecords(ctx context.Context, ids ...int) (int, error)
	DeleteSelectedRecords(ctx context.Context) ([]int, error)
}

// DeleteRecordsCommand wraps Service.DeleteRecords and
// Service.DeleteSelectedRecords.
type DeleteRecordsCommand struct {
	service   deleteRecordsService
	telemetry Telemetry
}

// NewDeleteRecordsCommand builds the command.
func NewDeleteRecordsCommand(service deleteRecordsService, telemetry Telemetry) *DeleteRecordsCommand {
	return &DeleteRecordsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteRecordsInput] = (*DeleteRecordsCommand)(nil)

func (c *DeleteRecordsCommand) Execute(ctx context.Context, msg DeleteRecordsInput) error {
	if c.service == nil {
		return errors.New("delete records command requires service")
	}
	var removed int
	if msg.Selected {
		ids, err := c.service.DeleteSelectedRecords(ctx)
		if err != nil {
			return err
		}
		removed = len(ids)
	} else {
		if len(msg.IDs) == 0 {
			return storeerr.Missing("record", "ids")
		}
		n, err := c.service.DeleteRecords(ctx, msg.IDs...)
		if err != nil {
			return err
		}
		removed = n
	}
	if msg.Output != nil {
		*msg.Output = removed
	}
	c.telemetry.Record(ctx, commandEvent("records", "delete"), map[string]any{
		"removed":  removed,
		"selected": msg.Selected,
	})
	return nil
}
