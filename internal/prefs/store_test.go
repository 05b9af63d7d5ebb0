package prefs

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingValid(t *testing.T) {
	assert.True(t, RatingUp.Valid())
	assert.True(t, RatingDown.Valid())
	assert.False(t, Rating("sideways").Valid())
	assert.False(t, Rating("").Valid())
}

func TestLastWriteWins(t *testing.T) {
	s := NewStore()
	s.SetRating("tip-1", RatingUp)
	s.SetRating("tip-1", RatingDown)

	ratings, _ := s.Snapshot()
	assert.Equal(t, RatingDown, ratings["tip-1"])
	assert.Len(t, ratings, 1)
}

func TestRepeatOverwrite(t *testing.T) {
	s := NewStore()
	s.SetRepeat("tip-1", true)
	s.SetRepeat("tip-1", false)

	_, repeat := s.Snapshot()
	assert.Equal(t, map[string]bool{"tip-1": false}, repeat)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.SetRating("tip-1", RatingUp)

	ratings, repeat := s.Snapshot()
	ratings["tip-2"] = RatingDown
	repeat["tip-2"] = true

	gotRatings, gotRepeat := s.Snapshot()
	assert.Len(t, gotRatings, 1)
	assert.Empty(t, gotRepeat)
}

func TestConcurrentWrites(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("tip-%d", i%10)
			s.SetRating(id, RatingUp)
			s.SetRepeat(id, i%2 == 0)
		}(i)
	}
	wg.Wait()

	ratings, repeat := s.Snapshot()
	assert.Len(t, ratings, 10)
	assert.Len(t, repeat, 10)
}
