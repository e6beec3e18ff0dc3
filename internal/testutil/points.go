package testutil

import (
	"strconv"
	"strings"
)

// Player numbers as used by scoring.Match.RecordPoint.
const (
	P1 = 1
	P2 = 2
)

// Repeat returns n points for player.
func Repeat(player, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = player
	}
	return out
}

// Game returns the four points that win a love game for player.
func Game(player int) []int {
	return Repeat(player, 4)
}

// Games returns n love games for player.
func Games(player, n int) []int {
	return Repeat(player, 4*n)
}

// Tiebreak returns the seven points that win a tiebreak 7-0 for player.
func Tiebreak(player int) []int {
	return Repeat(player, 7)
}

// LoveSet returns the 24 points that win a set 6-0 for player.
func LoveSet(player int) []int {
	return Games(player, 6)
}

// AlternatingGames returns n love games won alternately, starting with first.
// AlternatingGames(P1, 12) reaches 6-6.
func AlternatingGames(first, n int) []int {
	var out []int
	player := first
	for i := 0; i < n; i++ {
		out = append(out, Game(player)...)
		player = other(player)
	}
	return out
}

// Concat joins point sequences.
func Concat(seqs ...[]int) []int {
	var out []int
	for _, s := range seqs {
		out = append(out, s...)
	}
	return out
}

// ConcatLines joins blocks of input lines.
func ConcatLines(blocks ...[]string) []string {
	var out []string
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}

// PointLines renders points as input lines: "0" for P1, "1" for P2.
func PointLines(points []int) []string {
	lines := make([]string, len(points))
	for i, p := range points {
		lines[i] = strconv.Itoa(p - 1)
	}
	return lines
}

// MatchBlock renders a full match block as input lines.
func MatchBlock(id, playerOne, playerTwo string, points []int) []string {
	lines := []string{"Match: " + id, playerOne + " vs " + playerTwo}
	return append(lines, PointLines(points)...)
}

// MatchText renders a full match block as newline-terminated text.
func MatchText(id, playerOne, playerTwo string, points []int) string {
	return strings.Join(MatchBlock(id, playerOne, playerTwo, points), "\n") + "\n"
}

func other(player int) int {
	if player == P1 {
		return P2
	}
	return P1
}
