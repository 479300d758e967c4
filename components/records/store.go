// Package records implements the in-memory user table behind the dashboard's
// data view: composable filters, a stable single-key sort, a selection set that
// always stays inside the visible rows, paging and export.
package records

import (
	"iter"
	"strings"
	"sync"

	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

const entity = "record"

// Store holds records in insertion order together with the active view state.
// All methods are safe for concurrent use; reads return copies.
type Store struct {
	mu       sync.RWMutex
	records  []Record
	nextID   int
	filter   Filter
	sort     Sort
	selected map[int]struct{}
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{
		nextID:   1,
		selected: make(map[int]struct{}),
		sort:     Sort{Direction: Asc},
	}
}

// NewDefaultStore builds a store seeded with DefaultRecords.
func NewDefaultStore() *Store {
	s := NewStore()
	_ = s.Seed(DefaultRecords()...)
	return s
}

// Seed appends records that already carry ids (seed data). Ids must be
// positive and unique; the id counter advances past the largest one. Nothing
// is appended when any record is rejected.
func (s *Store) Seed(records ...Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[int]struct{}, len(s.records)+len(records))
	for _, r := range s.records {
		seen[r.ID] = struct{}{}
	}
	next := s.nextID
	for _, r := range records {
		if r.ID <= 0 {
			return storeerr.Invalid(entity, "id", "must be positive")
		}
		if _, dup := seen[r.ID]; dup {
			return storeerr.Invalid(entity, "id", "duplicates an existing record")
		}
		if err := validate(r); err != nil {
			return err
		}
		seen[r.ID] = struct{}{}
		if r.ID >= next {
			next = r.ID + 1
		}
	}
	s.records = append(s.records, records...)
	s.nextID = next
	return nil
}

// SetFilter replaces the active filters and drops selected ids that are no
// longer visible.
func (s *Store) SetFilter(filter Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter
	s.pruneSelection()
}

// SetSort orders the view by key. Ties keep insertion order. SortNone restores
// insertion order.
func (s *Store) SetSort(key SortKey, direction Direction) error {
	if !key.Valid() {
		return storeerr.Invalid(entity, "sort", "unsupported key "+string(key))
	}
	if direction != Asc && direction != Desc {
		return storeerr.Invalid(entity, "direction", "must be asc or desc")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = Sort{Key: key, Direction: direction}
	return nil
}

// Filter returns the active filters.
func (s *Store) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Sort returns the active ordering.
func (s *Store) Sort() Sort {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sort
}

// View returns the filtered and sorted records.
func (s *Store) View() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view()
}

func (s *Store) view() []Record {
	return ApplyView(s.records, s.filter, s.sort)
}

// Records returns the full collection in insertion order.
func (s *Store) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Record(nil), s.records...)
}

// Record looks up a single record by id.
func (s *Store) Record(id int) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return Record{}, storeerr.NotFound(entity, id)
	}
	return s.records[idx], nil
}

// Len returns the size of the full collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// ToggleSelect adds a visible id to the selection or removes a selected one.
// Ids that are neither selected nor visible are rejected with a NotFoundError
// and the selection is left unchanged.
func (s *Store) ToggleSelect(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return nil
	}
	for _, r := range s.view() {
		if r.ID == id {
			s.selected[id] = struct{}{}
			return nil
		}
	}
	return storeerr.NotFound(entity, id)
}

// SelectAll selects exactly the visible ids, or clears the selection.
func (s *Store) SelectAll(selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[int]struct{})
	if !selected {
		return
	}
	for _, r := range s.view() {
		s.selected[r.ID] = struct{}{}
	}
}

// Selected returns the selected ids in view order.
func (s *Store) Selected() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, 0, len(s.selected))
	for _, r := range s.view() {
		if _, ok := s.selected[r.ID]; ok {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// IsSelected reports whether id is in the selection set.
func (s *Store) IsSelected(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.selected[id]
	return ok
}

// AddRecord validates fields, assigns the next id and appends the record.
// Role and Status default to User and Active.
func (s *Store) AddRecord(fields RecordFields) (Record, error) {
	r := fields.merge(Record{Role: RoleUser, Status: StatusActive})
	if err := validate(r); err != nil {
		return Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextID
	s.nextID++
	s.records = append(s.records, r)
	return r, nil
}

// UpdateRecord merges the non-nil fields into the record, preserving its id.
func (s *Store) UpdateRecord(id int, fields RecordFields) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return Record{}, storeerr.NotFound(entity, id)
	}
	updated := fields.merge(s.records[idx])
	updated.ID = id
	if err := validate(updated); err != nil {
		return Record{}, err
	}
	s.records[idx] = updated
	s.pruneSelection()
	return updated, nil
}

// DeleteRecords removes the matching records and their selection entries.
// Unknown ids are ignored. It returns the number of records removed.
func (s *Store) DeleteRecords(ids ...int) int {
	if len(ids) == 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteLocked(ids)
}

// DeleteSelected removes every selected record and returns the removed ids in
// view order.
func (s *Store) DeleteSelected() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.selected))
	for _, r := range s.view() {
		if _, ok := s.selected[r.ID]; ok {
			ids = append(ids, r.ID)
		}
	}
	s.deleteLocked(ids)
	return ids
}

func (s *Store) deleteLocked(ids []int) int {
	drop := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if _, ok := drop[r.ID]; ok {
			delete(s.selected, r.ID)
			continue
		}
		kept = append(kept, r)
	}
	removed := len(s.records) - len(kept)
	s.records = kept
	return removed
}

// Page returns page pageIndex (zero based) of the view. Out of range pages and
// non-positive sizes yield an empty slice.
func (s *Store) Page(pageIndex, pageSize int) []Record {
	view := s.View()
	start, end, ok := pageBounds(len(view), pageIndex, pageSize)
	if !ok {
		return []Record{}
	}
	return view[start:end]
}

// pageBounds returns the slice bounds of page pageIndex over n items. The
// index is compared against the page count before multiplying so huge
// indexes cannot overflow.
func pageBounds(n, pageIndex, pageSize int) (start, end int, ok bool) {
	if pageIndex < 0 || pageSize <= 0 || pageIndex >= pageCount(n, pageSize) {
		return 0, 0, false
	}
	start = pageIndex * pageSize
	return start, start + min(pageSize, n-start), true
}

// PageCount returns how many pages of pageSize the view spans.
func (s *Store) PageCount(pageSize int) int {
	return pageCount(len(s.View()), pageSize)
}

func pageCount(n, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	if n == 0 {
		return 0
	}
	return (n-1)/pageSize + 1
}

// Snapshot returns one page of the view together with the view state, all
// read under a single lock.
func (s *Store) Snapshot(pageIndex, pageSize int) PageView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	view := s.view()
	out := PageView{
		Records:  []Record{},
		Page:     pageIndex,
		Size:     pageSize,
		Total:    len(view),
		Pages:    pageCount(len(view), pageSize),
		Selected: make([]int, 0, len(s.selected)),
		Filter:   s.filter,
		Sort:     s.sort,
	}
	for _, r := range view {
		if _, ok := s.selected[r.ID]; ok {
			out.Selected = append(out.Selected, r.ID)
		}
	}
	if start, end, ok := pageBounds(len(view), pageIndex, pageSize); ok {
		out.Records = view[start:end]
	}
	return out
}

// ExportView returns a lazy sequence over the current view. Each range over
// the sequence snapshots the view again, so it can be restarted.
func (s *Store) ExportView() iter.Seq[ExportRow] {
	return func(yield func(ExportRow) bool) {
		for _, r := range s.View() {
			if !yield(r.Row()) {
				return
			}
		}
	}
}

// pruneSelection keeps only selected ids that are still visible. Callers hold
// the write lock.
func (s *Store) pruneSelection() {
	if len(s.selected) == 0 {
		return
	}
	visible := make(map[int]struct{}, len(s.records))
	for _, r := range s.records {
		if s.filter.Matches(r) {
			visible[r.ID] = struct{}{}
		}
	}
	for id := range s.selected {
		if _, ok := visible[id]; !ok {
			delete(s.selected, id)
		}
	}
}

func (s *Store) indexOf(id int) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func validate(r Record) error {
	if strings.TrimSpace(r.Name) == "" {
		return storeerr.Missing(entity, "name")
	}
	if strings.TrimSpace(r.Email) == "" {
		return storeerr.Missing(entity, "email")
	}
	if !strings.Contains(r.Email, "@") {
		return storeerr.Invalid(entity, "email", "must contain @")
	}
	if !r.Role.Valid() {
		return storeerr.Invalid(entity, "role", "unknown role "+string(r.Role))
	}
	if !r.Status.Valid() {
		return storeerr.Invalid(entity, "status", "unknown status "+string(r.Status))
	}
	return nil
}
