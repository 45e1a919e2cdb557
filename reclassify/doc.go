// Package reclassify provides functionality for re-labelling the stored
// corpus with a new or updated classifier.
//
// This package supports batch processing of messages in arrival order,
// progress tracking, retry logic with exponential backoff, and checkpoints
// so that an interrupted run resumes where it stopped.
package reclassify
