// Package explain produces the "AI Explain" text shown on the detail screen.
//
// Explainer is the seam where a real model integration would plug in. The
// only implementation today is Canned, which fills a fixed sentence with the
// snippet's language and never leaves the process.
package explain

import (
	"context"
	"fmt"

	"github.com/sakif/code-vault/internal/model"
)

// Explainer describes a snippet in prose.
type Explainer interface {
	Explain(ctx context.Context, snippet *model.Snippet) (string, error)
}

const cannedTemplate = "This %s code snippet demonstrates core programming functionality. " +
	"It's commonly used for educational purposes and real-world applications " +
	"and showcases essential programming concepts."

// Canned is an Explainer that returns a templated sentence.
type Canned struct{}

var _ Explainer = Canned{}

func (Canned) Explain(_ context.Context, snippet *model.Snippet) (string, error) {
	if snippet == nil {
		return "", fmt.Errorf("explain: nil snippet")
	}
	return fmt.Sprintf(cannedTemplate, snippet.Language), nil
}
