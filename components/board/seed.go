package board

import "time"

// DefaultColumns returns the demo board: four columns holding six cards.
func DefaultColumns() []Column {
	return []Column{
		{ID: "todo", Title: "To Do", Cards: []Card{
			{ID: "1", Title: "Design new landing page", Description: "Create wireframes and mockups for the new landing page", Priority: PriorityHigh, Assignee: "John Doe", DueDate: day(2024, 1, 20)},
			{ID: "2", Title: "Update documentation", Description: "Update API documentation with new endpoints", Priority: PriorityMedium, Assignee: "Jane Smith", DueDate: day(2024, 1, 18)},
		}},
		{ID: "in-progress", Title: "In Progress", Cards: []Card{
			{ID: "3", Title: "Implement user authentication", Description: "Add JWT authentication to the application", Priority: PriorityHigh, Assignee: "Mike Johnson", DueDate: day(2024, 1, 25)},
			{ID: "4", Title: "Fix responsive design issues", Description: "Resolve mobile layout problems", Priority: PriorityLow, Assignee: "Sarah Wilson", DueDate: day(2024, 1, 22)},
		}},
		{ID: "review", Title: "Review", Cards: []Card{
			{ID: "5", Title: "Code review for payment module", Description: "Review the payment integration code", Priority: PriorityHigh, Assignee: "David Brown", DueDate: day(2024, 1, 19)},
		}},
		{ID: "done", Title: "Done", Cards: []Card{
			{ID: "6", Title: "Setup CI/CD pipeline", Description: "Configure automated testing and deployment", Priority: PriorityMedium, Assignee: "Emily Davis", DueDate: day(2024, 1, 15)},
		}},
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
