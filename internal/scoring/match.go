package scoring

import "strings"

// Result is the final set count of a finished match.
type Result struct {
	WinnerSets int `json:"winner_sets"`
	LoserSets  int `json:"loser_sets"`
}

// Match is a best-of-three match between two players.
//
// INVARIANT: current is nil if and only if winner is set.
type Match struct {
	id        string
	playerOne string
	playerTwo string
	current   *Set
	completed []*Set
	sets      PointTally
	winner    int
	result    *Result
	points    []int // accepted points, in order
}

// NewMatch creates a match with an empty first set.
func NewMatch(id, playerOne, playerTwo string) *Match {
	return &Match{
		id:        id,
		playerOne: playerOne,
		playerTwo: playerTwo,
		current:   NewSet(playerOne, playerTwo),
	}
}

// ID returns the match identifier.
func (m *Match) ID() string { return m.id }

// PlayerOne returns the first competitor's name.
func (m *Match) PlayerOne() string { return m.playerOne }

// PlayerTwo returns the second competitor's name.
func (m *Match) PlayerTwo() string { return m.playerTwo }

// RecordPoint records a point for player (PlayerOne or PlayerTwo).
//
// Returns a MatchCompleted error once the match has a winner and an
// InvalidPlayer error for any other player number. Both checks run before
// any state changes.
func (m *Match) RecordPoint(player int) error {
	if m.winner != 0 {
		return NewMatchCompletedError(m.id)
	}
	if !validPlayer(player) {
		return NewInvalidPlayerError(player)
	}

	if err := m.current.RecordPoint(player); err != nil {
		return err
	}
	m.points = append(m.points, player)

	if m.current.IsWon() {
		m.completeSet()
	}
	return nil
}

// completeSet moves the current set into history and either finishes the
// match or starts the next set.
func (m *Match) completeSet() {
	setWinner := m.current.Winner()
	m.sets.Add(setWinner)
	m.completed = append(m.completed, m.current)

	if m.sets.For(setWinner) >= SetsToWinMatch {
		m.winner = setWinner
		m.result = &Result{
			WinnerSets: m.sets.For(setWinner),
			LoserSets:  m.sets.Against(setWinner),
		}
		m.current = nil
		return
	}
	m.current = NewSet(m.playerOne, m.playerTwo)
}

// PlayerName returns the name for a player number.
func (m *Match) PlayerName(player int) (string, error) {
	if !validPlayer(player) {
		return "", NewInvalidPlayerError(player)
	}
	if player == PlayerOne {
		return m.playerOne, nil
	}
	return m.playerTwo, nil
}

// playerNumber maps a name to its player number, or 0 if it is neither.
func (m *Match) playerNumber(name string) int {
	switch name {
	case m.playerOne:
		return PlayerOne
	case m.playerTwo:
		return PlayerTwo
	default:
		return 0
	}
}

// HasPlayer reports whether name is one of the competitors.
func (m *Match) HasPlayer(name string) bool {
	return m.playerNumber(name) != 0
}

// CurrentSet returns the set in progress, or nil once the match is over.
func (m *Match) CurrentSet() *Set {
	return m.current
}

// CompletedSets returns the finished sets in the order they were played.
func (m *Match) CompletedSets() []*Set {
	out := make([]*Set, len(m.completed))
	copy(out, m.completed)
	return out
}

// SetsWon returns the sets tally.
func (m *Match) SetsWon() PointTally {
	return m.sets
}

// SetsWonBy returns the number of sets won by player.
func (m *Match) SetsWonBy(player int) (int, error) {
	if !validPlayer(player) {
		return 0, NewInvalidPlayerError(player)
	}
	return m.sets.For(player), nil
}

// IsCompleted reports whether the match has a winner.
func (m *Match) IsCompleted() bool {
	return m.winner != 0
}

// HasStarted reports whether any point has been recorded.
func (m *Match) HasStarted() bool {
	return len(m.points) > 0
}

// Winner returns the winner's name, or "" while the match is in progress.
func (m *Match) Winner() string {
	if m.winner == 0 {
		return ""
	}
	name, _ := m.PlayerName(m.winner)
	return name
}

// Loser returns the loser's name, or "" while the match is in progress.
func (m *Match) Loser() string {
	if m.winner == 0 {
		return ""
	}
	name, _ := m.PlayerName(opponent(m.winner))
	return name
}

// Result returns the final set count and true once the match is over.
func (m *Match) Result() (Result, bool) {
	if m.result == nil {
		return Result{}, false
	}
	return *m.result, true
}

// Points returns a copy of the accepted point log.
func (m *Match) Points() []int {
	out := make([]int, len(m.points))
	copy(out, m.points)
	return out
}

// GamesSummary returns games won and lost by name across all completed sets
// and the set in progress. Points of the unfinished game are not counted.
func (m *Match) GamesSummary(name string) (won, lost int, err error) {
	player := m.playerNumber(name)
	if player == 0 {
		return 0, 0, NewPlayerNotFoundError(name)
	}

	for _, s := range m.completed {
		won += s.games.For(player)
		lost += s.games.Against(player)
	}
	if m.current != nil {
		won += m.current.games.For(player)
		lost += m.current.games.Against(player)
	}
	return won, lost, nil
}

// ScoreDisplay renders the score of every set played so far.
//
// Completed sets appear as "g1-g2". A set in progress appears as its games
// tally alone when the current game has no points yet and the tally is not
// 0-0, otherwise as "g1-g2 (<game score>)". A match with no points reads "0-0".
func (m *Match) ScoreDisplay() string {
	if !m.HasStarted() {
		return DisplayZero
	}

	parts := make([]string, 0, len(m.completed)+1)
	for _, s := range m.completed {
		parts = append(parts, s.ScoreDisplay())
	}

	if m.current != nil {
		gameScore := m.current.current.ScoreDisplay()
		setScore := m.current.ScoreDisplay()

		switch {
		case gameScore == DisplayGame:
			parts = append(parts, setScore)
		case m.current.current.points.Total() == 0 && m.current.games.Total() > 0:
			parts = append(parts, setScore)
		default:
			parts = append(parts, setScore+" ("+gameScore+")")
		}
	}

	if len(parts) == 0 {
		return DisplayZero
	}
	return strings.Join(parts, ", ")
}

// Reset returns the match to its freshly created state.
func (m *Match) Reset() {
	m.current = NewSet(m.playerOne, m.playerTwo)
	m.completed = nil
	m.sets.Reset()
	m.winner = 0
	m.result = nil
	m.points = nil
}
