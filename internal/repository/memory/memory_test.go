package memory

import (
	"context"
	"testing"

	"github.com/sakif/code-vault/internal/model"
	"github.com/sakif/code-vault/internal/repository"
	"github.com/sakif/code-vault/internal/repository/repotest"
)

func TestContract(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.SnippetRepository {
		return New()
	})
}

func TestNew_SeedsInOrder(t *testing.T) {
	store := New(
		model.Snippet{ID: "1", Title: "one"},
		model.Snippet{ID: "2", Title: "two"},
	)

	all, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 || all[0].ID != "1" || all[1].ID != "2" {
		t.Errorf("List() = %+v, want seeds 1 then 2", all)
	}
}

// Duplicate IDs are not rejected; Delete removes all of them.
func TestDelete_RemovesAllDuplicates(t *testing.T) {
	ctx := context.Background()
	store := New(
		model.Snippet{ID: "dup", Title: "first"},
		model.Snippet{ID: "keep", Title: "kept"},
		model.Snippet{ID: "dup", Title: "second"},
	)

	if err := store.Delete(ctx, "dup"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	all, _ := store.List(ctx)
	if len(all) != 1 || all[0].ID != "keep" {
		t.Errorf("List() after delete = %+v, want only 'keep'", all)
	}
}
