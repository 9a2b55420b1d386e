package models

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(s) {
	case TaskTodo, TaskInProgress, TaskDone:
		return TaskStatus(s), true
	}
	return "", false
}

type Task struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Role   Role       `json:"role"`
	DueKey string     `json:"due_key"`
	Status TaskStatus `json:"status"`
}

// Toggle flips done back to todo and moves every other status to done.
// in_progress is a seed-only state: once toggled away it is never
// reachable again.
func (t *Task) Toggle() {
	if t.Status == TaskDone {
		t.Status = TaskTodo
	} else {
		t.Status = TaskDone
	}
}
