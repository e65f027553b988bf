package memory

import (
	"github.com/pickem-league/pickem-api/internal/domain/player"
	"github.com/pickem-league/pickem-api/internal/domain/user"
)

// SeedPlayers covers enough of the league to run the fantasy contest without
// a database or an initial provider sync.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ESPNID: "3139477", Name: "Patrick Mahomes", Position: player.PositionQuarterback, Team: "Kansas City Chiefs"},
		{ESPNID: "3918298", Name: "Josh Allen", Position: player.PositionQuarterback, Team: "Buffalo Bills"},
		{ESPNID: "4038941", Name: "Jalen Hurts", Position: player.PositionQuarterback, Team: "Philadelphia Eagles"},
		{ESPNID: "3916387", Name: "Lamar Jackson", Position: player.PositionQuarterback, Team: "Baltimore Ravens"},
		{ESPNID: "4241479", Name: "Joe Burrow", Position: player.PositionQuarterback, Team: "Cincinnati Bengals"},
		{ESPNID: "4429795", Name: "C.J. Stroud", Position: player.PositionQuarterback, Team: "Houston Texans"},

		{ESPNID: "4241457", Name: "Christian McCaffrey", Position: player.PositionRunningBack, Team: "San Francisco 49ers"},
		{ESPNID: "4429160", Name: "Bijan Robinson", Position: player.PositionRunningBack, Team: "Atlanta Falcons"},
		{ESPNID: "4379399", Name: "Breece Hall", Position: player.PositionRunningBack, Team: "New York Jets"},
		{ESPNID: "4240069", Name: "Saquon Barkley", Position: player.PositionRunningBack, Team: "Philadelphia Eagles"},
		{ESPNID: "4360238", Name: "Jahmyr Gibbs", Position: player.PositionRunningBack, Team: "Detroit Lions"},
		{ESPNID: "4047365", Name: "Derrick Henry", Position: player.PositionRunningBack, Team: "Baltimore Ravens"},
		{ESPNID: "4241985", Name: "Josh Jacobs", Position: player.PositionRunningBack, Team: "Green Bay Packers"},
		{ESPNID: "4430737", Name: "De'Von Achane", Position: player.PositionRunningBack, Team: "Miami Dolphins"},

		{ESPNID: "4262921", Name: "Justin Jefferson", Position: player.PositionWideReceiver, Team: "Minnesota Vikings"},
		{ESPNID: "4241389", Name: "CeeDee Lamb", Position: player.PositionWideReceiver, Team: "Dallas Cowboys"},
		{ESPNID: "4430027", Name: "Ja'Marr Chase", Position: player.PositionWideReceiver, Team: "Cincinnati Bengals"},
		{ESPNID: "4361370", Name: "Amon-Ra St. Brown", Position: player.PositionWideReceiver, Team: "Detroit Lions"},
		{ESPNID: "4258173", Name: "Tyreek Hill", Position: player.PositionWideReceiver, Team: "Miami Dolphins"},
		{ESPNID: "4426515", Name: "Puka Nacua", Position: player.PositionWideReceiver, Team: "Los Angeles Rams"},
		{ESPNID: "4047646", Name: "A.J. Brown", Position: player.PositionWideReceiver, Team: "Philadelphia Eagles"},
		{ESPNID: "4429615", Name: "Garrett Wilson", Position: player.PositionWideReceiver, Team: "New York Jets"},
		{ESPNID: "4569618", Name: "Malik Nabers", Position: player.PositionWideReceiver, Team: "New York Giants"},
		{ESPNID: "4432708", Name: "Marvin Harrison Jr.", Position: player.PositionWideReceiver, Team: "Arizona Cardinals"},

		{ESPNID: "15847", Name: "Travis Kelce", Position: player.PositionTightEnd, Team: "Kansas City Chiefs"},
		{ESPNID: "4360248", Name: "Sam LaPorta", Position: player.PositionTightEnd, Team: "Detroit Lions"},
		{ESPNID: "4036133", Name: "Mark Andrews", Position: player.PositionTightEnd, Team: "Baltimore Ravens"},
		{ESPNID: "4432665", Name: "Brock Bowers", Position: player.PositionTightEnd, Team: "Las Vegas Raiders"},
		{ESPNID: "3116365", Name: "George Kittle", Position: player.PositionTightEnd, Team: "San Francisco 49ers"},

		{ESPNID: "3055899", Name: "Harrison Butker", Position: player.PositionKicker, Team: "Kansas City Chiefs"},
		{ESPNID: "4360234", Name: "Jake Moody", Position: player.PositionKicker, Team: "San Francisco 49ers"},
		{ESPNID: "2971573", Name: "Brandon Aubrey", Position: player.PositionKicker, Team: "Dallas Cowboys"},
		{ESPNID: "16339", Name: "Justin Tucker", Position: player.PositionKicker, Team: "Baltimore Ravens"},
		{ESPNID: "4249087", Name: "Evan McPherson", Position: player.PositionKicker, Team: "Cincinnati Bengals"},
	}
}

// SeedUsers registers the demo contest participants.
func SeedUsers() []user.User {
	return []user.User{
		{ID: "u-alice", Username: "alice"},
		{ID: "u-bob", Username: "bob"},
		{ID: "u-carol", Username: "carol"},
	}
}
