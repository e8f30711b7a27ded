package models

import "time"

const (
	// CreatedAtLayout формат отметки времени создания задачи.
	CreatedAtLayout = "2006-01-02 15:04:05"
	// DueDateLayout формат срока выполнения задачи.
	DueDateLayout = "2006-01-02"
)

// Task представляет задачу пользователя.
// Текст задачи служит ключом поиска внутри списка, отдельного идентификатора нет.
type Task struct {
	Text      string  `json:"text"`       // Текст задачи
	Completed bool    `json:"completed"`  // Признак выполнения
	CreatedAt string  `json:"created_at"` // Время создания в формате CreatedAtLayout
	DueDate   *string `json:"due_date"`   // Срок в формате DueDateLayout, nil если срока нет
}

// Due возвращает срок задачи как дату. ok == false, если срока нет или он не разбирается.
func (t Task) Due() (due time.Time, ok bool) {
	if t.DueDate == nil {
		return time.Time{}, false
	}
	due, err := time.Parse(DueDateLayout, *t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

// TaskView задача вместе с вычисленными на момент запроса признаками срочности.
type TaskView struct {
	Task
	Urgent  bool `json:"urgent"`
	Overdue bool `json:"overdue"`
}
