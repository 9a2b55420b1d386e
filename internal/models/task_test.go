package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTask_ToggleInvolution(t *testing.T) {
	task := &Task{ID: "t1", Status: TaskTodo}

	task.Toggle()
	assert.Equal(t, TaskDone, task.Status)

	task.Toggle()
	assert.Equal(t, TaskTodo, task.Status)
}

func TestTask_ToggleFromInProgress(t *testing.T) {
	task := &Task{ID: "t1", Status: TaskInProgress}

	// in_progress is never reachable again once toggled away
	task.Toggle()
	assert.Equal(t, TaskDone, task.Status)

	task.Toggle()
	assert.Equal(t, TaskTodo, task.Status)
}

func TestParseTaskStatus(t *testing.T) {
	status, ok := ParseTaskStatus("in_progress")
	assert.True(t, ok)
	assert.Equal(t, TaskInProgress, status)

	_, ok = ParseTaskStatus("blocked")
	assert.False(t, ok)
}
