package records

import (
	"cmp"
	"slices"
	"strings"

	"github.com/ettle/strcase"

	"github.com/goliatone/go-admin-dashboard/components/storeerr"
)

// ParseSortKey normalizes user input ("lastLogin", "Last Login", "last-login")
// into a SortKey.
func ParseSortKey(value string) (SortKey, error) {
	key := SortKey(strcase.ToSnake(strings.TrimSpace(value)))
	if !key.Valid() {
		return SortNone, storeerr.Invalid("record", "sort", "unsupported key "+value)
	}
	return key, nil
}

// ParseDirection accepts asc/desc in any case. Empty means ascending.
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(Asc):
		return Asc, nil
	case string(Desc):
		return Desc, nil
	}
	return Asc, storeerr.Invalid("record", "direction", "must be asc or desc")
}

// ApplyView computes the filtered and sorted view over records. It never
// mutates its input and returns a fresh slice.
func ApplyView(records []Record, filter Filter, sort Sort) []Record {
	view := make([]Record, 0, len(records))
	for _, r := range records {
		if filter.Matches(r) {
			view = append(view, r)
		}
	}
	if sort.Key == SortNone {
		return view
	}
	compare := comparator(sort.Key)
	slices.SortStableFunc(view, func(a, b Record) int {
		if sort.Direction == Desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return view
}

// Matches reports whether r passes every filter.
func (f Filter) Matches(r Record) bool {
	if !constraintMatches(f.Role, string(r.Role)) {
		return false
	}
	if !constraintMatches(f.Status, string(r.Status)) {
		return false
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	if search == "" {
		return true
	}
	for _, field := range []string{r.Name, r.Email, string(r.Role), string(r.Status)} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func constraintMatches(constraint, value string) bool {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" || strings.EqualFold(constraint, All) {
		return true
	}
	return constraint == value
}

func comparator(key SortKey) func(a, b Record) int {
	switch key {
	case SortName:
		return func(a, b Record) int { return compareFold(a.Name, b.Name) }
	case SortEmail:
		return func(a, b Record) int { return compareFold(a.Email, b.Email) }
	case SortRole:
		return func(a, b Record) int { return cmp.Compare(a.Role, b.Role) }
	case SortStatus:
		return func(a, b Record) int { return cmp.Compare(a.Status, b.Status) }
	case SortLastLogin:
		return func(a, b Record) int { return a.LastLogin.Compare(b.LastLogin) }
	default:
		return func(a, b Record) int { return cmp.Compare(a.ID, b.ID) }
	}
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
