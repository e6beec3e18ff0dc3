package scoring

import "fmt"

// PointTally is a pair of counters, one per player.
//
// Game uses it for points, Set for games, Match for sets. A tally only ever
// grows; the sole way down is Reset.
type PointTally struct {
	PlayerOne int `json:"player_one"`
	PlayerTwo int `json:"player_two"`
}

// Add increments the counter for player.
// The caller is responsible for validating player first.
func (t *PointTally) Add(player int) {
	if player == PlayerOne {
		t.PlayerOne++
		return
	}
	t.PlayerTwo++
}

// Reset sets both counters to zero.
func (t *PointTally) Reset() {
	t.PlayerOne = 0
	t.PlayerTwo = 0
}

// For returns the counter for player.
func (t PointTally) For(player int) int {
	if player == PlayerOne {
		return t.PlayerOne
	}
	return t.PlayerTwo
}

// Against returns the opponent's counter.
func (t PointTally) Against(player int) int {
	return t.For(opponent(player))
}

// Total returns the sum of both counters.
func (t PointTally) Total() int {
	return t.PlayerOne + t.PlayerTwo
}

// Leader returns the player with the higher counter, or 0 when tied.
func (t PointTally) Leader() int {
	switch {
	case t.PlayerOne > t.PlayerTwo:
		return PlayerOne
	case t.PlayerTwo > t.PlayerOne:
		return PlayerTwo
	default:
		return 0
	}
}

// Lead returns the absolute difference between the counters.
func (t PointTally) Lead() int {
	return abs(t.PlayerOne - t.PlayerTwo)
}

// Max returns the higher of the two counters.
func (t PointTally) Max() int {
	return max(t.PlayerOne, t.PlayerTwo)
}

// String renders the tally as "p1-p2".
func (t PointTally) String() string {
	return fmt.Sprintf("%d-%d", t.PlayerOne, t.PlayerTwo)
}
