package todo_test

import (
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/pdxmph/todo-tui/internal/todo"
)

func titleGenerator() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just(""),
		rapid.StringMatching(`[A-Za-z0-9 ]{1,30}`),
	)
}

// pickID draws an id from the list, or an id that is not in it
func pickID(t *rapid.T, l *todo.List) string {
	tasks := l.Tasks()
	if len(tasks) == 0 || rapid.Bool().Draw(t, "missing") {
		return "missing-id"
	}
	return tasks[rapid.IntRange(0, len(tasks)-1).Draw(t, "index")].ID
}

func TestList_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := todo.New(nil)

		ops := rapid.IntRange(1, 60).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			before := l.Tasks()

			switch rapid.IntRange(0, 4).Draw(t, "op") {
			case 0:
				title := titleGenerator().Draw(t, "title")
				l.SetDraft(title)
				_, err := l.Add()
				if title == "" {
					// Property: empty add is rejected and changes nothing
					if !errors.Is(err, todo.ErrEmptyTask) {
						t.Fatalf("expected ErrEmptyTask, got %v", err)
					}
					if l.Len() != len(before) {
						t.Fatalf("empty add changed length %d -> %d", len(before), l.Len())
					}
				} else if err != nil {
					t.Fatalf("Add(%q) failed: %v", title, err)
				}
			case 1:
				_ = l.BeginEdit(pickID(t, l))
			case 2:
				l.SetDraft(titleGenerator().Draw(t, "draft"))
				_, _ = l.CommitEdit()
			case 3:
				id := pickID(t, l)
				l.Delete(id)
				if _, ok := l.Task(id); ok {
					t.Fatalf("task %q still present after delete", id)
				}
			case 4:
				l.CancelEdit()
			}

			// Property: ids stay unique
			seen := make(map[string]bool)
			for _, task := range l.Tasks() {
				if seen[task.ID] {
					t.Fatalf("duplicate id %q", task.ID)
				}
				seen[task.ID] = true
			}

			// Property: a session always points at an existing task
			if l.Editing() {
				if _, ok := l.Task(l.EditingID()); !ok {
					t.Fatalf("session points at deleted task %q", l.EditingID())
				}
			}
		}
	})
}

func TestCommitEdit_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 10).Draw(t, "n")
		l := todo.New(nil)
		for i := 0; i < n; i++ {
			l.SetDraft(rapid.StringMatching(`[a-z]{1,10}`).Draw(t, "title"))
			if _, err := l.Add(); err != nil {
				t.Fatal(err)
			}
		}
		before := l.Tasks()

		target := rapid.IntRange(0, n-1).Draw(t, "target")
		newTitle := titleGenerator().Draw(t, "newTitle")

		if err := l.BeginEdit(before[target].ID); err != nil {
			t.Fatal(err)
		}
		l.SetDraft(newTitle)
		if _, err := l.CommitEdit(); err != nil {
			t.Fatal(err)
		}

		// Property: only the target title changes; ids and positions hold
		after := l.Tasks()
		for i := range before {
			if after[i].ID != before[i].ID {
				t.Fatalf("position %d id changed %q -> %q", i, before[i].ID, after[i].ID)
			}
			want := before[i].Title
			if i == target {
				want = newTitle
			}
			if after[i].Title != want {
				t.Fatalf("position %d: expected title %q, got %q", i, want, after[i].Title)
			}
		}
		if l.Editing() {
			t.Fatal("session not cleared after commit")
		}
	})
}
