// Package pipeline fans the lines of a document out to a pool of workers,
// scores them with a Scorer, and reduces the results.
//
// The only contract to implement is Scorer (ScoreLine).
// This keeps the pipeline swappable and testable.
package pipeline
