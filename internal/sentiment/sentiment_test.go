package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVaderScorerPolarity(t *testing.T) {
	s := NewVaderScorer()

	pos := s.Score("Wonderful news: students win award and celebrate a great success")
	assert.Greater(t, pos, 0.05)

	neg := s.Score("Terrible, awful and horrible day as prices hurt families")
	assert.Less(t, neg, 0.0)

	assert.InDelta(t, 0.0, s.Score("Parliament session begins on Monday"), 0.05)
}

func TestVaderScorerEmptyInput(t *testing.T) {
	s := NewVaderScorer()
	assert.Equal(t, 0.0, s.Score(""))
	assert.Equal(t, 0.0, s.Score("   \t\n"))
}

func TestVaderScorerArbitraryText(t *testing.T) {
	s := NewVaderScorer()
	for _, text := range []string{"!!!", "😀😀", "मुंबई में बारिश", "12345", "a - b - c"} {
		got := s.Score(text)
		assert.GreaterOrEqual(t, got, -1.0, text)
		assert.LessOrEqual(t, got, 1.0, text)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, clamp(1.5))
	assert.Equal(t, -1.0, clamp(-3))
	assert.Equal(t, 0.3, clamp(0.3))
}

func TestScorerFunc(t *testing.T) {
	var s Scorer = ScorerFunc(func(string) float64 { return 0.42 })
	assert.Equal(t, 0.42, s.Score("anything"))
}
