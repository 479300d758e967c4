package records

import "time"

// DefaultRecords returns the demo users shown by the data view.
func DefaultRecords() []Record {
	return []Record{
		{ID: 1, Name: "John Doe", Email: "john.doe@example.com", Role: RoleAdmin, Status: StatusActive, LastLogin: day(2024, 1, 15)},
		{ID: 2, Name: "Jane Smith", Email: "jane.smith@example.com", Role: RoleUser, Status: StatusActive, LastLogin: day(2024, 1, 14)},
		{ID: 3, Name: "Mike Johnson", Email: "mike.johnson@example.com", Role: RoleEditor, Status: StatusInactive, LastLogin: day(2024, 1, 10)},
		{ID: 4, Name: "Sarah Wilson", Email: "sarah.wilson@example.com", Role: RoleUser, Status: StatusActive, LastLogin: day(2024, 1, 13)},
		{ID: 5, Name: "David Brown", Email: "david.brown@example.com", Role: RoleAdmin, Status: StatusActive, LastLogin: day(2024, 1, 12)},
		{ID: 6, Name: "Emily Davis", Email: "emily.davis@example.com", Role: RoleEditor, Status: StatusInactive, LastLogin: day(2024, 1, 8)},
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
