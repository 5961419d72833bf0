// Package submissionservice owns the catalog of competition entries.
// Submissions are immutable once created; their review status and
// average score are derived from the rating ledger on every read and
// never stored alongside the entry.
package submissionservice
