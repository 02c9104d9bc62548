package util

import (
	"github.com/google/uuid"
)

const taskIDPrefix = "task-"

// NewTaskID returns a task ID of the form task-<uuid>. The UUID is version 7,
// so IDs sort by creation time and do not collide under rapid creation.
func NewTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return taskIDPrefix + uuid.NewString()
	}
	return taskIDPrefix + id.String()
}
