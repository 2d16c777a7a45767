package dto

// ParticipantRecord is one player's view of a match: build, runes, lane and the other nine players
type ParticipantRecord struct {
	RiotIdGameName     string            `json:"riotIdGameName"`
	RiotIdTagline      string            `json:"riotIdTagline"`
	ChampionName       string            `json:"championName"`
	Lane               string            `json:"lane"`
	IndividualPosition string            `json:"individualPosition"`
	Item0              *string           `json:"item0"`
	Item1              *string           `json:"item1"`
	Item2              *string           `json:"item2"`
	Item3              *string           `json:"item3"`
	Item4              *string           `json:"item4"`
	Item5              *string           `json:"item5"`
	PrimaryRunes       []string          `json:"primary_runes"`
	SecondaryRunes     []string          `json:"secondary_runes"`
	Participants       OtherParticipants `json:"participants"`

	// Kept for catalog documents, not part of the API response
	MatchID        string    `json:"-"`
	GameVersion    string    `json:"-"`
	TeamID         int       `json:"-"`
	PrimaryStyle   int       `json:"-"`
	SecondaryStyle int       `json:"-"`
	StatPerks      StatPerks `json:"-"`
}

// Items returns the named item slots in order, skipping empty ones
func (r *ParticipantRecord) Items() []string {
	items := make([]string, 0, 6)
	for _, item := range []*string{r.Item0, r.Item1, r.Item2, r.Item3, r.Item4, r.Item5} {
		if item != nil {
			items = append(items, *item)
		}
	}
	return items
}

// Runes returns primary then secondary rune names
func (r *ParticipantRecord) Runes() []string {
	runes := make([]string, 0, len(r.PrimaryRunes)+len(r.SecondaryRunes))
	runes = append(runes, r.PrimaryRunes...)
	return append(runes, r.SecondaryRunes...)
}

type StatPerks struct {
	Offense int `json:"offense"`
	Flex    int `json:"flex"`
	Defense int `json:"defense"`
}

// ParticipantEntry summarizes one of the other players in the match
type ParticipantEntry struct {
	ChampionName       string `json:"championName"`
	Lane               string `json:"lane"`
	IndividualPosition string `json:"individualPosition"`
	TeamID             int    `json:"teamId"`
}

// OtherParticipants buckets the other nine players. A lane opponent is listed only under Opponent.
type OtherParticipants struct {
	TeamMembers      []ParticipantEntry `json:"teamMembers"`
	EnemyTeamMembers []ParticipantEntry `json:"enemyTeamMembers"`
	Opponent         []ParticipantEntry `json:"opponent"`
}

// Count returns the number of classified participants
func (o *OtherParticipants) Count() int {
	return len(o.TeamMembers) + len(o.EnemyTeamMembers) + len(o.Opponent)
}

// Champions returns the champion names of the target's side and of the other side.
// Lane opponents go to whichever side they play on.
func (o *OtherParticipants) Champions(teamID int) (team []string, enemy []string) {
	team = make([]string, 0, len(o.TeamMembers))
	enemy = make([]string, 0, len(o.EnemyTeamMembers)+len(o.Opponent))
	for _, p := range o.TeamMembers {
		team = append(team, p.ChampionName)
	}
	for _, p := range o.EnemyTeamMembers {
		enemy = append(enemy, p.ChampionName)
	}
	for _, p := range o.Opponent {
		if p.TeamID == teamID {
			team = append(team, p.ChampionName)
		} else {
			enemy = append(enemy, p.ChampionName)
		}
	}
	return team, enemy
}

// PlayerIdentity is a resolved Riot ID
type PlayerIdentity struct {
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
	PUUID    string `json:"puuid"`
}
