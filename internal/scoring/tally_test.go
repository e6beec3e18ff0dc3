package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointTally(t *testing.T) {
	var tally PointTally
	tally.Add(PlayerOne)
	tally.Add(PlayerOne)
	tally.Add(PlayerTwo)

	assert.Equal(t, 2, tally.For(PlayerOne))
	assert.Equal(t, 1, tally.Against(PlayerOne))
	assert.Equal(t, 1, tally.For(PlayerTwo))
	assert.Equal(t, 3, tally.Total())
	assert.Equal(t, PlayerOne, tally.Leader())
	assert.Equal(t, 1, tally.Lead())
	assert.Equal(t, 2, tally.Max())
	assert.Equal(t, "2-1", tally.String())

	tally.Reset()
	assert.Equal(t, PointTally{}, tally)
	assert.Equal(t, 0, tally.Leader())
}

func TestPointTally_LeaderPlayerTwo(t *testing.T) {
	tally := PointTally{PlayerOne: 3, PlayerTwo: 5}
	assert.Equal(t, PlayerTwo, tally.Leader())
	assert.Equal(t, 2, tally.Lead())
}
