package models

// Filter задаёт выборку из активного списка задач пользователя.
type Filter string

const (
	FilterAll       Filter = "all"       // Все задачи в порядке добавления
	FilterActive    Filter = "active"    // Невыполненные
	FilterCompleted Filter = "completed" // Выполненные
	FilterUrgent    Filter = "urgent"    // Невыполненные со сроком в ближайшие дни или просроченные
	FilterOverdue   Filter = "overdue"   // Невыполненные с прошедшим сроком
)

// ParseFilter переводит строку запроса в Filter. Неизвестные значения трактуются как FilterAll.
func ParseFilter(s string) Filter {
	switch f := Filter(s); f {
	case FilterActive, FilterCompleted, FilterUrgent, FilterOverdue:
		return f
	default:
		return FilterAll
	}
}
