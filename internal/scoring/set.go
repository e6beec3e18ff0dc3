package scoring

// Set tracks the games of one set and owns the game in progress.
//
// Completed games are not kept; only the games tally survives them. When the
// games tally reaches 6-6 the next game is a tiebreak, and winning it ends
// the set 7-6.
type Set struct {
	playerOne string
	playerTwo string
	current   *Game
	games     PointTally
	winner    int
	tiebreak  bool
}

// NewSet creates a set whose first game is a normal game.
func NewSet(playerOne, playerTwo string) *Set {
	return &Set{
		playerOne: playerOne,
		playerTwo: playerTwo,
		current:   NewGame(playerOne, playerTwo),
	}
}

// RecordPoint records a point for player in the current game and advances
// the set when that game is won. A finished set ignores further points.
func (s *Set) RecordPoint(player int) error {
	if !validPlayer(player) {
		return NewInvalidPlayerError(player)
	}
	if s.winner != 0 {
		return nil
	}

	if err := s.current.RecordPoint(player); err != nil {
		return err
	}
	if s.current.IsWon() {
		s.completeGame()
	}
	return nil
}

// completeGame credits the game winner and either ends the set or starts
// the next game.
func (s *Set) completeGame() {
	gameWinner := s.current.Winner()
	s.games.Add(gameWinner)

	if s.hasWinner() {
		s.winner = gameWinner
		return
	}

	if s.games.PlayerOne == GamesForTiebreak && s.games.PlayerTwo == GamesForTiebreak {
		s.tiebreak = true
		s.current = NewTiebreakGame(s.playerOne, s.playerTwo)
		return
	}
	s.current = NewGame(s.playerOne, s.playerTwo)
}

// hasWinner reports whether the games tally decides the set.
func (s *Set) hasWinner() bool {
	if s.tiebreak {
		return s.current.IsWon()
	}
	if s.games.Max() >= GamesToWinSet && s.games.Lead() >= GamesLeadToWinSet {
		return true
	}
	return s.games.Max() == GamesInTiebreakSet
}

// CurrentGame returns the game in progress. After the set is won this is
// the deciding game.
func (s *Set) CurrentGame() *Game {
	return s.current
}

// Games returns the games tally.
func (s *Set) Games() PointTally {
	return s.games
}

// Winner returns the winning player number, or 0 if undecided.
func (s *Set) Winner() int {
	return s.winner
}

// IsWon reports whether the set has a winner.
func (s *Set) IsWon() bool {
	return s.winner != 0
}

// IsTiebreak reports whether the set reached 6-6.
func (s *Set) IsTiebreak() bool {
	return s.tiebreak
}

// ScoreDisplay renders the games tally as "<p1>-<p2>".
func (s *Set) ScoreDisplay() string {
	return s.games.String()
}
