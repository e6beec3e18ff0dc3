package scoring

import (
	"fmt"
	"strconv"
)

// GameMode selects the win predicate and display format of a Game.
type GameMode int

const (
	// ModeNormal is a regular game: first to 4 points with a lead of 2.
	ModeNormal GameMode = iota
	// ModeTiebreak is the 6-6 deciding game: first to 7 points with a lead of 2.
	ModeTiebreak
)

// String returns the mode name.
func (m GameMode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeTiebreak:
		return "tiebreak"
	default:
		return fmt.Sprintf("GameMode(%d)", int(m))
	}
}

// Game tracks the points of a single game between two players.
//
// Once a winner is decided, further points are ignored.
type Game struct {
	playerOne string
	playerTwo string
	mode      GameMode
	points    PointTally
	winner    int // 0 until decided, else PlayerOne or PlayerTwo
}

// NewGame creates a normal game.
func NewGame(playerOne, playerTwo string) *Game {
	return &Game{playerOne: playerOne, playerTwo: playerTwo, mode: ModeNormal}
}

// NewTiebreakGame creates a tiebreak game.
func NewTiebreakGame(playerOne, playerTwo string) *Game {
	return &Game{playerOne: playerOne, playerTwo: playerTwo, mode: ModeTiebreak}
}

// RecordPoint records a point for player (PlayerOne or PlayerTwo).
// Returns an InvalidPlayer error for any other number. Recording a point on
// a game that is already won is a no-op.
func (g *Game) RecordPoint(player int) error {
	if !validPlayer(player) {
		return NewInvalidPlayerError(player)
	}
	if g.winner != 0 {
		return nil
	}

	g.points.Add(player)
	if g.hasWinner() {
		g.winner = g.points.Leader()
	}
	return nil
}

// hasWinner reports whether the current points decide the game.
func (g *Game) hasWinner() bool {
	threshold := PointsToWinGame
	if g.mode == ModeTiebreak {
		threshold = PointsToWinTiebreak
	}
	return g.points.Max() >= threshold && g.points.Lead() >= PointsLeadToWin
}

// Mode returns the game mode.
func (g *Game) Mode() GameMode {
	return g.mode
}

// Points returns the point tally.
func (g *Game) Points() PointTally {
	return g.points
}

// Winner returns the winning player number, or 0 if undecided.
func (g *Game) Winner() int {
	return g.winner
}

// IsWon reports whether the game has a winner.
func (g *Game) IsWon() bool {
	return g.winner != 0
}

func (g *Game) name(player int) string {
	switch player {
	case PlayerOne:
		return g.playerOne
	case PlayerTwo:
		return g.playerTwo
	default:
		return ""
	}
}

// ScoreDisplay renders the game score.
//
// Normal games read "Game", "Deuce", "Advantage <leader>" or "<p1>-<p2>" in
// spoken points (0, 15, 30, 40). Tiebreak games read "Game" or raw counts.
func (g *Game) ScoreDisplay() string {
	if g.winner != 0 {
		return DisplayGame
	}
	if g.mode == ModeTiebreak {
		return g.points.String()
	}

	p1, p2 := g.points.PlayerOne, g.points.PlayerTwo
	if p1 >= PointsForDeuce && p2 >= PointsForDeuce {
		switch g.points.Lead() {
		case 0:
			return DisplayDeuce
		case 1:
			return DisplayAdvantage + " " + g.name(g.points.Leader())
		}
	}
	return pointName(p1) + "-" + pointName(p2)
}

// pointName maps a point count to its spoken score. Counts above 3 never
// reach here for an undecided game, but fall back to the raw number.
func pointName(points int) string {
	if name, ok := pointNames[points]; ok {
		return name
	}
	return strconv.Itoa(points)
}
