package calendar

import "time"

// DefaultEvents returns the demo schedule for January 2024.
func DefaultEvents() []Event {
	return []Event{
		{
			ID: "1", Title: "Team Standup Meeting",
			Start: at(15, 10, 0), End: at(15, 10, 30),
			Description: "Daily team sync meeting", Location: "Conference Room A",
			Type: TypeMeeting, Priority: PriorityHigh, Recurring: true,
			Attendees: []string{"John Doe", "Jane Smith", "Mike Johnson"},
		},
		{
			ID: "2", Title: "Client Presentation",
			Start: at(16, 14, 0), End: at(16, 15, 30),
			Description: "Present quarterly results to client", Location: "Virtual Meeting",
			Type: TypePresentation, Priority: PriorityHigh,
			Attendees: []string{"Sarah Wilson", "David Brown"},
		},
		{
			ID: "3", Title: "Project Deadline",
			Start: at(18, 17, 0), End: at(18, 17, 0),
			Description: "Submit final project deliverables", Location: "Office",
			Type: TypeDeadline, Priority: PriorityCritical,
			Attendees: []string{"Emily Davis"},
		},
		{
			ID: "4", Title: "Training Session",
			Start: at(20, 9, 0), End: at(20, 12, 0),
			Description: "New software training for team", Location: "Training Room",
			Type: TypeTraining, Priority: PriorityMedium,
			Attendees: []string{"All Team Members"},
		},
		{
			ID: "5", Title: "Birthday Party",
			Start: at(22, 18, 0), End: at(22, 22, 0),
			Description: "Celebrating team member birthday", Location: "Restaurant Downtown",
			Type: TypePersonal, Priority: PriorityLow,
			Attendees: []string{"Team Members"},
		},
	}
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.January, day, hour, minute, 0, 0, time.UTC)
}
