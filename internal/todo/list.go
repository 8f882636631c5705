package todo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// List owns the task list, the draft text and the edit session.
// It is not safe for concurrent use; the caller serializes mutations.
type List struct {
	tasks   []Task
	draft   string
	editing string // id of the task being edited, empty when no session
	newID   func() string
}

// Option configures a List
type Option func(*List)

// WithIDFunc replaces the id generator. Generated ids must never repeat.
func WithIDFunc(fn func() string) Option {
	return func(l *List) {
		l.newID = fn
	}
}

// New creates a list holding a copy of tasks
func New(tasks []Task, opts ...Option) *List {
	l := &List{
		tasks: cloneTasks(tasks),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Restore loads the saved list once. On failure it still returns a usable
// empty list alongside the error, and the in-memory list becomes authoritative.
func Restore(ctx context.Context, loader Loader, opts ...Option) (*List, error) {
	tasks, err := loader.Load(ctx)
	if err != nil {
		return New(nil, opts...), fmt.Errorf("loading tasks: %w", err)
	}
	return New(tasks, opts...), nil
}

// SetDraft replaces the draft text
func (l *List) SetDraft(text string) {
	l.draft = text
}

// Add appends a task titled with the current draft and clears the draft.
// Only the empty string is rejected; whitespace counts as text.
func (l *List) Add() (Effect, error) {
	if l.draft == "" {
		return Effect{}, ErrEmptyTask
	}

	l.tasks = append(l.tasks, Task{ID: l.newID(), Title: l.draft})
	l.draft = ""
	return l.saveEffect(), nil
}

// BeginEdit starts editing the task with the given id, replacing any active
// session, and loads its title into the draft.
func (l *List) BeginEdit(id string) error {
	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("editing %q: %w", id, ErrTaskNotFound)
	}

	l.editing = id
	l.draft = l.tasks[i].Title
	return nil
}

// CommitEdit writes the draft into the task being edited. Unlike Add, an
// empty draft is accepted.
func (l *List) CommitEdit() (Effect, error) {
	if l.editing == "" {
		return Effect{}, ErrNoEditSession
	}

	if i := l.indexOf(l.editing); i >= 0 {
		l.tasks[i].Title = l.draft
	}
	l.editing = ""
	l.draft = ""
	return l.saveEffect(), nil
}

// CancelEdit drops the edit session and the draft without touching the list
func (l *List) CancelEdit() {
	l.editing = ""
	l.draft = ""
}

// Delete removes the task with the given id. A missing id is not an error.
// Deleting the task under edit also ends the session.
func (l *List) Delete(id string) Effect {
	if i := l.indexOf(id); i >= 0 {
		l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	}

	if l.editing != "" && l.editing == id {
		l.editing = ""
		l.draft = ""
	}
	return l.saveEffect()
}

// Tasks returns a copy of the tasks in insertion order
func (l *List) Tasks() []Task {
	return cloneTasks(l.tasks)
}

// Task looks up a task by id
func (l *List) Task(id string) (Task, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.tasks[i], true
	}
	return Task{}, false
}

// Len returns the number of tasks
func (l *List) Len() int {
	return len(l.tasks)
}

// Draft returns the current draft text
func (l *List) Draft() string {
	return l.draft
}

// Editing reports whether an edit session is active
func (l *List) Editing() bool {
	return l.editing != ""
}

// EditingID returns the id of the task being edited, or ""
func (l *List) EditingID() string {
	return l.editing
}

func (l *List) indexOf(id string) int {
	for i, t := range l.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (l *List) saveEffect() Effect {
	return Effect{Save: true, Tasks: cloneTasks(l.tasks)}
}

func cloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
