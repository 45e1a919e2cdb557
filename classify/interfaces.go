package classify

import "context"

// Classifier maps a message body to a category label.
// Implementations must be thread-safe for concurrent use.
type Classifier interface {
	// Classify returns the category of text. Text that matches no category
	// is assigned the vocabulary's default category, not an error.
	// Returns an error only when the classifier itself fails.
	Classify(ctx context.Context, text string) (string, error)
}

// Func adapts an ordinary function to the Classifier interface.
type Func func(ctx context.Context, text string) (string, error)

// Classify calls f.
func (f Func) Classify(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}
