package dto

import (
	"time"
)

// VideoDocument is a catalogued streamer video tagged with the match played in it
type VideoDocument struct {
	ID                 string     `json:"id"`
	YTID               string     `json:"ytid"`
	Timestamp          int        `json:"timestamp"` // seconds into the video where the game starts
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	VideoURL           string     `json:"videoUrl"`
	PublishedAt        *time.Time `json:"publishedAt"`
	Champion           string     `json:"champion"`
	EnemyChampion      string     `json:"enemyChampion"`
	TeamChampions      []string   `json:"teamChampions"`
	EnemyTeamChampions []string   `json:"enemyTeamChampions"`
	Lane               string     `json:"lane"`
	Runes              []string   `json:"runes"`
	ChampionItems      []string   `json:"championItems"`
	LolVersion         string     `json:"lolVersion"`
	Streamer           string     `json:"streamer"`
	IsActive           bool       `json:"isActive"`
}

// VideoSubmission is a video added by hand with its matchup already known
type VideoSubmission struct {
	VideoURL           string   `json:"videoUrl"`
	Champion           string   `json:"champion"`
	EnemyChampion      string   `json:"enemyChampion"`
	TeamChampions      []string `json:"teamChampions"`
	EnemyTeamChampions []string `json:"enemyTeamChampions"`
	Lane               string   `json:"lane"`
	Runes              []string `json:"runes"`
	ChampionItems      []string `json:"championItems"`
	LolVersion         string   `json:"lolVersion"`
}

// VideoStats are live counters, not stored with the document
type VideoStats struct {
	Views int64 `json:"views"`
	Likes int64 `json:"likes"`
}
