// Package core provides the business logic of the HMDA loan-record ETL.
//
// The package is independent of any transport or file format. It can be
// used by the web server, the CLI, or tests without modification. Input is
// a sequence of [RawRecord] values handed over by a container reader; output
// is a sequence of [CanonicalRecord] values with the 126 canonical fields in
// fixed order, plus one [ValidationFinding] per record.
//
// # Pipeline
//
// [Pipeline.Run] sequences the steps over one [Batch]:
//
//  1. Normalize: rename verbose export headers with [Normalize]
//  2. Dedupe: collapse rows sharing a ULI or address|city ([Dedupe])
//  3. Merge: fill empty fields from supplemental rows ([Merge])
//  4. Transform: build canonical records ([Transformer.Transform])
//  5. Validate: flag problems and record safe corrections ([Validate])
//
// Each step appends a [StepTrace] to the result. Dedupe and merge are
// order-sensitive and run in one pass; transform and validate run on a
// bounded worker pool.
//
// # Field Resolution
//
// Every stage reads raw records through [Resolve], which searches the
// canonical name, then each known alias, then case-insensitive matches.
// A present zero or empty value counts as found.
//
// # Data Problems
//
// Bad data never aborts a run. Missing identifiers, out-of-range codes and
// unmappable values end up in findings and trace warnings, and every input
// row yields exactly one output record. Only cancellation returns an error.
//
// # Service
//
// [Service] wraps the pipeline for servers: it caps concurrent runs with a
// [RunLimiter], keeps recent runs in memory and persists them through an
// optional [RunStore].
package core
