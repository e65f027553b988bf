package espn

import (
	"strconv"
	"strings"
	"time"

	"github.com/pickem-league/pickem-api/internal/usecase"
)

// Envelope structs mirror the slices of the ESPN site API payloads this
// client actually reads. Everything else in the payload is ignored.

type teamsEnvelope struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team teamBlock `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

type teamBlock struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
	Location     string `json:"location"`
}

type scoreboardEnvelope struct {
	Events []eventBlock `json:"events"`
}

type eventBlock struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	ShortName    string             `json:"shortName"`
	Date         string             `json:"date"`
	Status       statusBlock        `json:"status"`
	Competitions []competitionBlock `json:"competitions"`
}

type statusBlock struct {
	Type struct {
		Name      string `json:"name"`
		State     string `json:"state"`
		Completed bool   `json:"completed"`
	} `json:"type"`
}

type competitionBlock struct {
	Competitors []competitorBlock `json:"competitors"`
}

type competitorBlock struct {
	HomeAway string    `json:"homeAway"`
	Score    string    `json:"score"`
	Winner   bool      `json:"winner"`
	Team     teamBlock `json:"team"`
}

type summaryEnvelope struct {
	Header struct {
		ID           string `json:"id"`
		Competitions []struct {
			Status      statusBlock       `json:"status"`
			Competitors []competitorBlock `json:"competitors"`
		} `json:"competitions"`
	} `json:"header"`
	Boxscore struct {
		Players []playerStatsBlock `json:"players"`
	} `json:"boxscore"`
}

type playerStatsBlock struct {
	Team struct {
		ID string `json:"id"`
	} `json:"team"`
	Statistics []struct {
		Name     string   `json:"name"`
		Labels   []string `json:"labels"`
		Athletes []struct {
			Athlete struct {
				ID          string `json:"id"`
				DisplayName string `json:"displayName"`
			} `json:"athlete"`
			Stats []string `json:"stats"`
		} `json:"athletes"`
	} `json:"statistics"`
}

func mapTeams(envelope teamsEnvelope) []usecase.ExternalTeam {
	var teams []usecase.ExternalTeam
	for _, sport := range envelope.Sports {
		for _, league := range sport.Leagues {
			for _, entry := range league.Teams {
				teams = append(teams, usecase.ExternalTeam{
					ExternalID:   entry.Team.ID,
					Name:         entry.Team.DisplayName,
					Abbreviation: entry.Team.Abbreviation,
					Location:     entry.Team.Location,
				})
			}
		}
	}
	return teams
}

func mapEvent(event eventBlock) usecase.ExternalGame {
	game := usecase.ExternalGame{
		ExternalID: event.ID,
		Name:       event.Name,
		ShortName:  event.ShortName,
		Date:       parseEventDate(event.Date),
		Status:     event.Status.Type.Name,
		Completed:  event.Status.Type.Completed,
	}

	if len(event.Competitions) > 0 {
		for _, competitor := range event.Competitions[0].Competitors {
			side := mapSide(competitor)
			if strings.EqualFold(competitor.HomeAway, "home") {
				game.Home = side
			} else {
				game.Away = side
			}
		}
	}
	return game
}

func mapSide(competitor competitorBlock) usecase.ExternalGameSide {
	return usecase.ExternalGameSide{
		TeamID:       competitor.Team.ID,
		TeamName:     competitor.Team.DisplayName,
		Abbreviation: competitor.Team.Abbreviation,
		Score:        parseScore(competitor.Score),
		Winner:       competitor.Winner,
	}
}

func mapGameResult(gameID string, envelope summaryEnvelope) usecase.ExternalGameResult {
	result := usecase.ExternalGameResult{GameID: gameID}

	if len(envelope.Header.Competitions) == 0 {
		return result
	}
	competition := envelope.Header.Competitions[0]
	result.Completed = competition.Status.Type.Completed
	result.Status = competition.Status.Type.Name

	sawWinner := false
	for _, competitor := range competition.Competitors {
		side := mapSide(competitor)
		if strings.EqualFold(competitor.HomeAway, "home") {
			result.Home = side
		} else {
			result.Away = side
		}
		if competitor.Winner {
			sawWinner = true
			result.WinnerTeamID = competitor.Team.ID
			result.WinnerTeamName = competitor.Team.DisplayName
		}
	}

	// ESPN marks neither competitor as winner on a tie.
	result.Tie = result.Completed && !sawWinner
	return result
}

func mapBoxScore(gameID string, envelope summaryEnvelope) usecase.ExternalBoxScore {
	box := usecase.ExternalBoxScore{GameID: gameID}
	if len(envelope.Header.Competitions) > 0 {
		box.Completed = envelope.Header.Competitions[0].Status.Type.Completed
		box.Status = envelope.Header.Competitions[0].Status.Type.Name
	}

	for _, teamStats := range envelope.Boxscore.Players {
		for _, category := range teamStats.Statistics {
			for _, athlete := range category.Athletes {
				line := usecase.ExternalStatLine{
					PlayerID:   athlete.Athlete.ID,
					PlayerName: athlete.Athlete.DisplayName,
					TeamID:     teamStats.Team.ID,
					Category:   category.Name,
					Stats:      alignStats(category.Labels, athlete.Stats),
				}
				box.Lines = append(box.Lines, line)
			}
		}
	}
	return box
}

// alignStats zips the category label row against one athlete's stat row.
// Rows shorter than the label set are padded implicitly by omission.
func alignStats(labels, stats []string) map[string]string {
	aligned := make(map[string]string, len(labels))
	for i, label := range labels {
		if i >= len(stats) {
			break
		}
		aligned[label] = stats[i]
	}
	return aligned
}

func parseScore(raw string) int {
	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return score
}

func parseEventDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
