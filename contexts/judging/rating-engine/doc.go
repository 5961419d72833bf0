// Package ratingengine implements the scoring core of the judging
// context.
//
// The module owns the rating ledger (one row per expert/submission
// pair, last write wins), per-criterion score validation against the
// rubric, lazy aggregation of submission scores, and the ranked
// leaderboard read model. Business rules live in application/domain
// layers; infrastructure stays behind ports and adapters.
package ratingengine
