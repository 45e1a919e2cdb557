// Package mock provides test double implementations of classify.Classifier.
//
// Use Classifier in tests that need deterministic categories or that need to
// observe how often the engine classifies:
//
//	c := mock.NewClassifier()
//	c.ClassifyFunc = func(ctx context.Context, text string) (string, error) {
//	    if strings.Contains(text, "ранен") {
//	        return "casualties", nil
//	    }
//	    return "general", nil
//	}
package mock
