package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-dashboard/components/board"
)

// BoardInput requests the whole board.
type BoardInput struct{}

type boardService interface {
	BoardColumns(ctx context.Context) []board.Column
	ColumnSummary(ctx context.Context) []board.ColumnSummary
}

// BoardQuery returns every column with its cards in order.
type BoardQuery struct {
	service boardService
}

// NewBoardQuery builds the query.
func NewBoardQuery(service boardService) *BoardQuery {
	return &BoardQuery{service: service}
}

var _ gocommand.Querier[BoardInput, []board.Column] = (*BoardQuery)(nil)

func (q *BoardQuery) Query(ctx context.Context, _ BoardInput) ([]board.Column, error) {
	return q.service.BoardColumns(ctx), nil
}

// ColumnSummaryQuery returns per-column card counts.
type ColumnSummaryQuery struct {
	service boardService
}

// NewColumnSummaryQuery builds the query.
func NewColumnSummaryQuery(service boardService) *ColumnSummaryQuery {
	return &ColumnSummaryQuery{service: service}
}

var _ gocommand.Querier[BoardInput, []board.ColumnSummary] = (*ColumnSummaryQuery)(nil)

func (q *ColumnSummaryQuery) Query(ctx context.Context, _ BoardInput) ([]board.ColumnSummary, error) {
	return q.service.ColumnSummary(ctx), nil
}
