// Package todo holds the in-memory task list and the operations that mutate it.
package todo

import (
	"context"
	"errors"
)

// Task is a single to-do entry
type Task struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

var (
	// ErrEmptyTask is returned by Add when the draft text is empty
	ErrEmptyTask = errors.New("you shouldn't add empty task")

	// ErrTaskNotFound is returned when an id does not reference a task in the list
	ErrTaskNotFound = errors.New("task not found")

	// ErrNoEditSession is returned by CommitEdit when no task is being edited
	ErrNoEditSession = errors.New("no task is being edited")
)

// Loader reads a previously saved task list
type Loader interface {
	Load(ctx context.Context) ([]Task, error)
}

// Saver writes the complete task list, replacing whatever was stored before
type Saver interface {
	Save(ctx context.Context, tasks []Task) error
}

// Effect describes the follow-up work a mutation asks the caller to perform.
// Tasks is a snapshot of the whole list taken when the mutation happened.
type Effect struct {
	Save  bool
	Tasks []Task
}

// Persist writes the snapshot through s. It does nothing for a zero Effect.
func (e Effect) Persist(ctx context.Context, s Saver) error {
	if !e.Save {
		return nil
	}
	return s.Save(ctx, e.Tasks)
}
