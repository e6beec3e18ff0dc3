// Package scoring implements the tennis scoring state machine.
//
// State is nested as Game → Set → Match. Each level owns exactly one level
// below it and never holds a reference back to its owner:
//
//   - Game tracks points within one game. A game is either a normal game
//     (first to 4 points, lead of 2) or a tiebreak game (first to 7, lead of 2).
//   - Set tracks games won and starts a tiebreak game at 6-6.
//   - Match tracks sets won and finishes when a player has won 2 sets.
//
// # Validation Before Mutation
//
// Every RecordPoint validates the player number and completion state before
// touching any tally, so a failed call leaves the state exactly as it was.
//
// # Point Log
//
// Match keeps the ordered list of accepted points. Replaying that list into a
// fresh Match rebuilds an identical object graph, which is how state is
// persisted between runs (see internal/record and internal/store).
//
// Nothing in this package is safe for concurrent mutation. Callers serialize
// writes to a single Match.
package scoring
