package scoring

// Player numbers accepted by RecordPoint.
const (
	PlayerOne = 1
	PlayerTwo = 2
)

// Game rules.
const (
	PointsToWinGame     = 4
	PointsLeadToWin     = 2
	PointsForDeuce      = 3
	PointsToWinTiebreak = 7
)

// Set rules.
const (
	GamesToWinSet      = 6
	GamesLeadToWinSet  = 2
	GamesForTiebreak   = 6
	GamesInTiebreakSet = 7
)

// SetsToWinMatch is the best-of-three threshold.
const SetsToWinMatch = 2

// Display strings.
const (
	DisplayDeuce     = "Deuce"
	DisplayAdvantage = "Advantage"
	DisplayGame      = "Game"
	DisplayZero      = "0-0"
)

// pointNames maps a normal-game point count to its spoken score.
var pointNames = map[int]string{0: "0", 1: "15", 2: "30", 3: "40"}

func validPlayer(player int) bool {
	return player == PlayerOne || player == PlayerTwo
}

func opponent(player int) int {
	if player == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
