// Package ingestion provides pipeline orchestration for importing intercepts.
//
// The Pipeline type manages the import workflow for messages, including:
//   - Validating messages against domain rules
//   - Adding them to storage, skipping duplicates by content fingerprint
//   - Pre-classifying uncategorized messages asynchronously
//
// Classification is performed on a worker pool so that imports return as soon
// as messages are stored. Errors during async processing are logged but do not
// fail the import.
package ingestion
