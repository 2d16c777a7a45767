package match_resolution

import (
	"lolstreamsearch/lib/dto"
	"lolstreamsearch/lib/web/riot"
)

// Classify sorts every participant except puuid into team members, enemy team members and
// the lane opponent. A participant sharing the target's individualPosition is an opponent
// even when on the same team, and then appears in no other bucket.
func Classify(participants []riot.Participant, puuid string, teamID int, individualPosition string) dto.OtherParticipants {
	others := dto.OtherParticipants{
		TeamMembers:      []dto.ParticipantEntry{},
		EnemyTeamMembers: []dto.ParticipantEntry{},
		Opponent:         []dto.ParticipantEntry{},
	}

	for _, p := range participants {
		if p.PUUID == puuid {
			continue
		}

		entry := dto.ParticipantEntry{
			ChampionName:       HumanizeChampion(p.ChampionName),
			Lane:               p.Lane,
			IndividualPosition: HumanizeLane(p.IndividualPosition),
			TeamID:             p.TeamID,
		}

		switch {
		case p.IndividualPosition == individualPosition:
			others.Opponent = append(others.Opponent, entry)
		case p.TeamID == teamID:
			others.TeamMembers = append(others.TeamMembers, entry)
		default:
			others.EnemyTeamMembers = append(others.EnemyTeamMembers, entry)
		}
	}

	return others
}
