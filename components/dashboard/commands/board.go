package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-dashboard/components/board"
	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

// MoveCardInput describes a drag and drop. Output reports whether the board
// changed.
type MoveCardInput struct {
	CardID string `json:"card_id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Index  int    `json:"index"`
	Output *bool  `json:"-"`
}

type moveCardService interface {
	MoveCard(ctx context.Context, cardID, from, to string, index int) (bool, error)
}

// MoveCardCommand wraps Service.MoveCard.
type MoveCardCommand struct {
	service   moveCardService
	telemetry Telemetry
}

// NewMoveCardCommand builds the command.
func NewMoveCardCommand(service moveCardService, telemetry Telemetry) *MoveCardCommand {
	return &MoveCardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[MoveCardInput] = (*MoveCardCommand)(nil)

func (c *MoveCardCommand) Execute(ctx context.Context, msg MoveCardInput) error {
	if c.service == nil {
		return errors.New("move card command requires service")
	}
	if msg.CardID == "" {
		return storeerr.Missing("card", "id")
	}
	if msg.From == "" || msg.To == "" {
		return storeerr.Missing("card", "column")
	}
	moved, err := c.service.MoveCard(ctx, msg.CardID, msg.From, msg.To, msg.Index)
	if err != nil {
		return err
	}
	if msg.Output != nil {
		*msg.Output = moved
	}
	c.telemetry.Record(ctx, commandEvent("board", "move"), map[string]any{
		"card_id": msg.CardID,
		"moved":   moved,
	})
	return nil
}

// AddCardInput creates a card at the end of a column.
type AddCardInput struct {
	ColumnID string `json:"column_id"`
	board.CardFields
	Output *board.Card `json:"-"`
}

type addCardService interface {
	AddCard(ctx context.Context, columnID string, fields board.CardFields) (board.Card, error)
}

// AddCardCommand wraps Service.AddCard.
type AddCardCommand struct {
	service   addCardService
	telemetry Telemetry
}

// NewAddCardCommand builds the command.
func NewAddCardCommand(service addCardService, telemetry Telemetry) *AddCardCommand {
	return &AddCardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddCardInput] = (*AddCardCommand)(nil)

func (c *AddCardCommand) Execute(ctx context.Context, msg AddCardInput) error {
	if c.service == nil {
		return errors.New("add card command requires service")
	}
	if msg.ColumnID == "" {
		return storeerr.Missing("card", "column")
	}
	card, err := c.service.AddCard(ctx, msg.ColumnID, msg.CardFields)
	if err != nil {
		return err
	}
	if msg.Output != nil {
		*msg.Output = card
	}
	c.telemetry.Record(ctx, commandEvent("board", "add"), map[string]any{
		"card_id":   card.ID,
		"column_id": msg.ColumnID,
	})
	return nil
}

// UpdateCardInput patches a card wherever it lives.
type UpdateCardInput struct {
	CardID string `json:"card_id"`
	board.CardFields
	Output *board.Card `json:"-"`
}

type updateCardService interface {
	UpdateCard(ctx context.Context, cardID string, fields board.CardFields) (board.Card, error)
}

// UpdateCardCommand wraps Service.UpdateCard.
type UpdateCardCommand struct {
	service   updateCardService
	telemetry Telemetry
}

// NewUpdateCardCommand builds the command.
func NewUpdateCardCommand(service updateCardService, telemetry Telemetry) *UpdateCardCommand {
	return &UpdateCardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateCardInput] = (*UpdateCardCommand)(nil)

func (c *UpdateCardCommand) Execute(ctx context.Context, msg UpdateCardInput) error {
	if c.service == nil {
		return errors.New("update card command requires service")
	}
	if msg.CardID == "" {
		return storeerr.Missing("card", "id")
	}
	card, err := c.service.UpdateCard(ctx, msg.CardID, msg.CardFields)
	if err != nil {
		return err
	}
	if msg.Output != nil {
		*msg.Output = card
	}
	c.telemetry.Record(ctx, commandEvent("board", "update"), map[string]any{"card_id": card.ID})
	return nil
}

// DeleteCardInput removes a card. Output reports whether it existed.
type DeleteCardInput struct {
	CardID string `json:"card_id"`
	Output *bool  `json:"-"`
}

type deleteCardService interface {
	DeleteCard(ctx context.Context, cardID string) (bool, error)
}

// DeleteCardCommand wraps Service.DeleteCard.
type DeleteCardCommand struct {
	service   deleteCardService
	telemetry Telemetry
}

// NewDeleteCardCommand builds the command.
func NewDeleteCardCommand(service deleteCardService, telemetry Telemetry) *DeleteCardCommand {
	return &DeleteCardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteCardInput] = (*DeleteCardCommand)(nil)

func (c *DeleteCardCommand) Execute(ctx context.Context, msg DeleteCardInput) error {
	if c.service == nil {
		return errors.New("delete card command requires service")
	}
	if msg.CardID == "" {
		return storeerr.Missing("card", "id")
	}
	deleted, err := c.service.DeleteCard(ctx, msg.CardID)
	if err != nil {
		return err
	}
	if msg.Output != nil {
		*msg.Output = deleted
	}
	c.telemetry.Record(ctx, commandEvent("board", "delete"), map[string]any{
		"card_id": msg.CardID,
		"deleted": deleted,
	})
	return nil
}
