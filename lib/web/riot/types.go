package riot

// Account is the response of /riot/account/v1/accounts/by-riot-id
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Match is the response of /lol/match/v5/matches/{matchId}.
// Only the fields the service reads are declared; absent keys decode to zero values.
type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // PUUIDs
}

type MatchInfo struct {
	GameCreation       int64         `json:"gameCreation"`
	GameStartTimestamp int64         `json:"gameStartTimestamp"`
	GameDuration       int           `json:"gameDuration"`
	GameVersion        string        `json:"gameVersion"`
	PlatformID         string        `json:"platformId"`
	QueueID            int           `json:"queueId"`
	Participants       []Participant `json:"participants"`
}

type Participant struct {
	PUUID              string `json:"puuid"`
	RiotIdGameName     string `json:"riotIdGameName"`
	RiotIdTagline      string `json:"riotIdTagline"`
	ChampionID         int    `json:"championId"`
	ChampionName       string `json:"championName"`
	Lane               string `json:"lane"`               // TOP, JUNGLE, MIDDLE, BOTTOM, NONE
	IndividualPosition string `json:"individualPosition"` // TOP, JUNGLE, MIDDLE, BOTTOM, UTILITY, Invalid
	TeamPosition       string `json:"teamPosition"`
	TeamID             int    `json:"teamId"` // 100 blue, 200 red
	Win                bool   `json:"win"`
	Item0              int    `json:"item0"`
	Item1              int    `json:"item1"`
	Item2              int    `json:"item2"`
	Item3              int    `json:"item3"`
	Item4              int    `json:"item4"`
	Item5              int    `json:"item5"`
	Item6              int    `json:"item6"` // Trinket
	Perks              Perks  `json:"perks"`
}

// Items returns the six inventory slots, trinket excluded
func (p *Participant) Items() [6]int {
	return [6]int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5}
}

type Perks struct {
	StatPerks StatPerks   `json:"statPerks"`
	Styles    []PerkStyle `json:"styles"`
}

type StatPerks struct {
	Offense int `json:"offense"`
	Flex    int `json:"flex"`
	Defense int `json:"defense"`
}

type PerkStyle struct {
	Description string          `json:"description"` // primaryStyle, subStyle
	Style       int             `json:"style"`       // tree id, e.g. 8000 Precision
	Selections  []PerkSelection `json:"selections"`
}

type PerkSelection struct {
	Perk int `json:"perk"`
}

// Style returns the style at index i, or an empty style when the match omitted it
func (p *Perks) Style(i int) PerkStyle {
	if i < 0 || i >= len(p.Styles) {
		return PerkStyle{}
	}
	return p.Styles[i]
}
