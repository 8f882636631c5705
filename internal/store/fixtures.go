package store

import (
	"context"
	"fmt"

	"github.com/pdxmph/todo-tui/internal/todo"
)

// FixtureTitles is the sample list written by Seed when no titles are given
var FixtureTitles = []string{
	"Buy milk",
	"Walk dog",
	"Call the dentist",
	"Renew passport",
	"Water the plants",
	"Book train tickets for the weekend",
}

// Seed replaces the stored list with one task per title, in order
func (a *Adapter) Seed(ctx context.Context, titles ...string) ([]todo.Task, error) {
	if len(titles) == 0 {
		titles = FixtureTitles
	}

	list := todo.New(nil)
	for _, title := range titles {
		list.SetDraft(title)
		if _, err := list.Add(); err != nil {
			return nil, fmt.Errorf("adding fixture %q: %w", title, err)
		}
	}

	tasks := list.Tasks()
	if err := a.Save(ctx, tasks); err != nil {
		return nil, fmt.Errorf("saving fixtures: %w", err)
	}
	return tasks, nil
}
