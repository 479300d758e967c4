package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-admin-dashboard/components/records"
	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

// DefaultPageSize is used when a page request carries no size.
const DefaultPageSize = 10

// RecordPageInput selects a zero based page of the data view.
type RecordPageInput struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

type recordPageService interface {
	RecordPage(ctx context.Context, page, size int) records.PageView
}

// RecordPageQuery reads one page of the filtered, sorted data view.
type RecordPageQuery struct {
	service     recordPageService
	defaultSize int
}

// NewRecordPageQuery builds the query.
func NewRecordPageQuery(service recordPageService) *RecordPageQuery {
	return &RecordPageQuery{service: service, defaultSize: DefaultPageSize}
}

// WithDefaultSize changes the size used for requests without one. Values
// below one are ignored.
func (q *RecordPageQuery) WithDefaultSize(size int) *RecordPageQuery {
	if size > 0 {
		q.defaultSize = size
	}
	return q
}

var _ gocommand.Querier[RecordPageInput, records.PageView] = (*RecordPageQuery)(nil)

func (q *RecordPageQuery) Query(ctx context.Context, input RecordPageInput) (records.PageView, error) {
	if input.Page < 0 {
		return records.PageView{}, storeerr.Invalid("record", "page", "must not be negative")
	}
	if input.Size < 0 {
		return records.PageView{}, storeerr.Invalid("record", "size", "must not be negative")
	}
	if input.Size == 0 {
		input.Size = q.defaultSize
	}
	return q.service.RecordPage(ctx, input.Page, input.Size), nil
}
