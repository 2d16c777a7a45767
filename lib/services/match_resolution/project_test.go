package match_resolution

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"lolstreamsearch/lib/web/riot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	items map[int]string
	runes map[int]string
}

func (c *fakeCatalog) ItemName(ctx context.Context, id int) *string {
	if id == 0 {
		return nil
	}
	name, ok := c.items[id]
	if !ok {
		name = fmt.Sprintf("Unknown Item (%d)", id)
	}
	return &name
}

func (c *fakeCatalog) RuneName(ctx context.Context, id int) string {
	if name, ok := c.runes[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Rune (%d)", id)
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		items: map[int]string{1056: "Doran's Ring", 6653: "Liandry's Torment"},
		runes: map[int]string{8229: "Arcane Comet", 8226: "Manaflow Band", 8345: "Biscuit Delivery"},
	}
}

func TestProjectFixture(t *testing.T) {
	match := loadFixtureMatch(t)
	record := NewProjector(newFakeCatalog()).Project(context.Background(), match, fixturePUUID)
	require.NotNil(t, record)

	assert.Equal(t, "Chamkin", record.RiotIdGameName)
	assert.Equal(t, "EUW", record.RiotIdTagline)
	assert.Equal(t, "Yorick", record.ChampionName)
	assert.Equal(t, "TOP", record.Lane)
	assert.Equal(t, "Top", record.IndividualPosition)
	require.NotNil(t, record.Item0)
	assert.Equal(t, "Doran's Ring", *record.Item0)
	assert.Equal(t, "Unknown Item (3020)", *record.Item2)
	assert.Nil(t, record.Item5)
	assert.Equal(t, []string{"Arcane Comet", "Manaflow Band", "Unknown Rune (8210)", "Unknown Rune (8236)"}, record.PrimaryRunes)
	assert.Len(t, record.SecondaryRunes, 2)

	assert.Equal(t, fixtureMatchID, record.MatchID)
	assert.Equal(t, "15.22.722.1234", record.GameVersion)
	assert.Equal(t, 8200, record.PrimaryStyle)
	assert.Equal(t, 8300, record.SecondaryStyle)
	assert.Equal(t, 5011, record.StatPerks.Defense)
	assert.Equal(t, 9, record.Participants.Count())
}

func TestProjectUnknownPUUID(t *testing.T) {
	match := loadFixtureMatch(t)
	assert.Nil(t, NewProjector(newFakeCatalog()).Project(context.Background(), match, "someone-else"))
}

func TestProjectDuplicatePUUID(t *testing.T) {
	match := loadFixtureMatch(t)
	match.Info.Participants[1].PUUID = fixturePUUID
	assert.Nil(t, NewProjector(newFakeCatalog()).Project(context.Background(), match, fixturePUUID))
}

func TestProjectMissingPerks(t *testing.T) {
	match := &riot.Match{Info: riot.MatchInfo{Participants: []riot.Participant{
		{PUUID: "me", ChampionName: "Teemo", IndividualPosition: "TOP"},
	}}}

	record := NewProjector(newFakeCatalog()).Project(context.Background(), match, "me")
	require.NotNil(t, record)
	assert.Empty(t, record.PrimaryRunes)
	assert.Empty(t, record.SecondaryRunes)
	assert.NotNil(t, record.PrimaryRunes)
	assert.Nil(t, record.Item0)
	assert.Equal(t, 0, record.Participants.Count())
}

func TestParticipantRecordJSONHidesInternalFields(t *testing.T) {
	match := loadFixtureMatch(t)
	record := NewProjector(newFakeCatalog()).Project(context.Background(), match, fixturePUUID)

	raw, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "primary_runes")
	assert.Contains(t, decoded, "item5")
	assert.Nil(t, decoded["item5"])
	assert.NotContains(t, decoded, "MatchID")
	assert.NotContains(t, decoded, "StatPerks")

	participants := decoded["participants"].(map[string]any)
	assert.Len(t, participants["opponent"], 1)
}
