package scoring

import (
	"strconv"
	"strings"
)

// Category is a box-score statistics group.
type Category string

const (
	CategoryPassing   Category = "passing"
	CategoryRushing   Category = "rushing"
	CategoryReceiving Category = "receiving"
)

// Breakdown maps a stat label to the fantasy points it contributed.
type Breakdown map[string]float64

// PassingPoints scores a passing stat line: yards/25, 4 per TD, -2 per INT.
func PassingPoints(stats map[string]string) (float64, Breakdown) {
	breakdown := Breakdown{
		"passingYards":  StatValue(stats, "YDS") / 25,
		"passingTDs":    StatValue(stats, "TD") * 4,
		"interceptions": StatValue(stats, "INT") * -2,
	}
	return breakdown.total(), breakdown
}

// RushingPoints scores a rushing stat line: yards/10, 6 per TD.
func RushingPoints(stats map[string]string) (float64, Breakdown) {
	breakdown := Breakdown{
		"rushingYards": StatValue(stats, "YDS") / 10,
		"rushingTDs":   StatValue(stats, "TD") * 6,
	}
	return breakdown.total(), breakdown
}

// ReceivingPoints scores a receiving stat line under PPR rules: 1 per
// reception, yards/10, 6 per TD.
func ReceivingPoints(stats map[string]string) (float64, Breakdown) {
	breakdown := Breakdown{
		"receptions":     StatValue(stats, "REC"),
		"receivingYards": StatValue(stats, "YDS") / 10,
		"receivingTDs":   StatValue(stats, "TD") * 6,
	}
	return breakdown.total(), breakdown
}

// Points dispatches on the box-score category. Unknown categories score zero.
func Points(category Category, stats map[string]string) (float64, Breakdown) {
	switch Category(strings.ToLower(strings.TrimSpace(string(category)))) {
	case CategoryPassing:
		return PassingPoints(stats)
	case CategoryRushing:
		return RushingPoints(stats)
	case CategoryReceiving:
		return ReceivingPoints(stats)
	default:
		return 0, Breakdown{}
	}
}

// StatValue parses one stat from a provider stat map. Missing or malformed
// values are zero; a scoring run must never fail on a single bad cell.
func StatValue(stats map[string]string, label string) float64 {
	raw, ok := stats[label]
	if !ok {
		return 0
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}

func (b Breakdown) total() float64 {
	sum := 0.0
	for _, v := range b {
		sum += v
	}
	return sum
}
