package usecase

import "time"

// Season type codes used by the provider's scoreboard API.
const (
	SeasonTypeRegular = 2
	SeasonTypePost    = 3
)

const (
	maxRegularSeasonWeek = 18
	maxPostSeasonWeek    = 4
)

// SeasonInfo identifies a provider season: the calendar year the season
// started in plus the regular/post season type code.
type SeasonInfo struct {
	Year int
	Type int
}

// CurrentSeason derives the season from the calendar. September through
// December belong to the regular season of the current year; January and
// February belong to the postseason of the previous year's season.
func CurrentSeason(now time.Time) SeasonInfo {
	switch now.Month() {
	case time.January, time.February:
		return SeasonInfo{Year: now.Year() - 1, Type: SeasonTypePost}
	default:
		return SeasonInfo{Year: now.Year(), Type: SeasonTypeRegular}
	}
}

// CurrentSeasonWeek approximates the NFL week number from week-of-month
// arithmetic, capped at 18 regular season weeks and 4 postseason weeks.
func CurrentSeasonWeek(now time.Time) int {
	weekOfMonth := (now.Day()-1)/7 + 1

	switch now.Month() {
	case time.September:
		return clampWeek(weekOfMonth, maxRegularSeasonWeek)
	case time.October:
		return clampWeek(4+weekOfMonth, maxRegularSeasonWeek)
	case time.November:
		return clampWeek(9+weekOfMonth, maxRegularSeasonWeek)
	case time.December:
		return clampWeek(13+weekOfMonth, maxRegularSeasonWeek)
	case time.January, time.February:
		return clampWeek(weekOfMonth, maxPostSeasonWeek)
	default:
		return 1
	}
}

func clampWeek(week, max int) int {
	if week < 1 {
		return 1
	}
	if week > max {
		return max
	}
	return week
}
