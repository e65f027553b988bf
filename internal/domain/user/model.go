package user

// User is a contest participant. Scores is index-aligned to week numbers:
// Scores[0] holds the week 1 pick score.
type User struct {
	ID       string
	Username string
	Scores   []int
}

// SetWeekScore records the pick score for a week, padding with zeros when the
// user has not been scored for earlier weeks yet.
func (u *User) SetWeekScore(weekNumber, score int) {
	if weekNumber < 1 {
		return
	}
	for len(u.Scores) < weekNumber {
		u.Scores = append(u.Scores, 0)
	}
	u.Scores[weekNumber-1] = score
}

// TotalScore sums every recorded week score.
func (u User) TotalScore() int {
	total := 0
	for _, s := range u.Scores {
		total += s
	}
	return total
}
