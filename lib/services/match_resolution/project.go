package match_resolution

import (
	"context"

	"lolstreamsearch/lib/dto"
	"lolstreamsearch/lib/web/riot"
)

// Catalog translates item and rune ids to display names
type Catalog interface {
	ItemName(ctx context.Context, id int) *string
	RuneName(ctx context.Context, id int) string
}

type Projector struct {
	catalog Catalog
}

func NewProjector(catalog Catalog) *Projector {
	return &Projector{catalog: catalog}
}

// Project builds the record of the participant identified by puuid.
// It returns nil unless exactly one participant carries that puuid.
func (p *Projector) Project(ctx context.Context, match *riot.Match, puuid string) *dto.ParticipantRecord {
	target := findParticipant(match.Info.Participants, puuid)
	if target == nil {
		return nil
	}

	items := target.Items()
	primary := target.Perks.Style(0)
	secondary := target.Perks.Style(1)

	record := &dto.ParticipantRecord{
		RiotIdGameName:     target.RiotIdGameName,
		RiotIdTagline:      target.RiotIdTagline,
		ChampionName:       HumanizeChampion(target.ChampionName),
		Lane:               target.Lane,
		IndividualPosition: HumanizeLane(target.IndividualPosition),
		Item0:              p.catalog.ItemName(ctx, items[0]),
		Item1:              p.catalog.ItemName(ctx, items[1]),
		Item2:              p.catalog.ItemName(ctx, items[2]),
		Item3:              p.catalog.ItemName(ctx, items[3]),
		Item4:              p.catalog.ItemName(ctx, items[4]),
		Item5:              p.catalog.ItemName(ctx, items[5]),
		PrimaryRunes:       p.runeNames(ctx, primary),
		SecondaryRunes:     p.runeNames(ctx, secondary),
		Participants:       Classify(match.Info.Participants, puuid, target.TeamID, target.IndividualPosition),

		MatchID:        match.Metadata.MatchID,
		GameVersion:    match.Info.GameVersion,
		TeamID:         target.TeamID,
		PrimaryStyle:   primary.Style,
		SecondaryStyle: secondary.Style,
		StatPerks: dto.StatPerks{
			Offense: target.Perks.StatPerks.Offense,
			Flex:    target.Perks.StatPerks.Flex,
			Defense: target.Perks.StatPerks.Defense,
		},
	}

	return record
}

func (p *Projector) runeNames(ctx context.Context, style riot.PerkStyle) []string {
	names := make([]string, 0, len(style.Selections))
	for _, selection := range style.Selections {
		names = append(names, p.catalog.RuneName(ctx, selection.Perk))
	}
	return names
}

func findParticipant(participants []riot.Participant, puuid string) *riot.Participant {
	var found *riot.Participant
	for i := range participants {
		if participants[i].PUUID != puuid {
			continue
		}
		if found != nil {
			return nil
		}
		found = &participants[i]
	}
	return found
}
