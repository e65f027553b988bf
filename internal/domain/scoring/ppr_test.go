package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPassingPoints(t *testing.T) {
	points, breakdown := PassingPoints(map[string]string{"YDS": "250", "TD": "2", "INT": "1"})

	assert.InDelta(t, 16.0, points, 1e-9)
	assert.InDelta(t, 10.0, breakdown["passingYards"], 1e-9)
	assert.InDelta(t, 8.0, breakdown["passingTDs"], 1e-9)
	assert.InDelta(t, -2.0, breakdown["interceptions"], 1e-9)
}

func TestRushingPoints(t *testing.T) {
	points, _ := RushingPoints(map[string]string{"YDS": "87", "TD": "1"})

	assert.InDelta(t, 14.7, points, 1e-9)
}

func TestReceivingPoints(t *testing.T) {
	points, breakdown := ReceivingPoints(map[string]string{"REC": "6", "YDS": "105", "TD": "1"})

	assert.InDelta(t, 22.5, points, 1e-9)
	assert.InDelta(t, 6.0, breakdown["receptions"], 1e-9)
}

func TestPointsUnknownCategoryScoresZero(t *testing.T) {
	points, breakdown := Points("fumbles", map[string]string{"YDS": "50"})

	assert.Zero(t, points)
	assert.Empty(t, breakdown)
}

func TestPointsMissingAndMalformedStats(t *testing.T) {
	cases := []struct {
		name  string
		stats map[string]string
		want  float64
	}{
		{name: "nil stats", stats: nil, want: 0},
		{name: "malformed yards", stats: map[string]string{"YDS": "12/24", "TD": "1"}, want: 4},
		{name: "dashes", stats: map[string]string{"YDS": "--", "TD": "--", "INT": "--"}, want: 0},
		{name: "whitespace", stats: map[string]string{"YDS": " 25 "}, want: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			points, _ := Points(CategoryPassing, tc.stats)
			assert.InDelta(t, tc.want, points, 1e-9)
		})
	}
}
