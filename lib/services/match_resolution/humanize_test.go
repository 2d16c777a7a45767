package match_resolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanizeChampion(t *testing.T) {
	assert.Equal(t, "K'Sante", HumanizeChampion("KSante"))
	assert.Equal(t, "Nunu Willump", HumanizeChampion("Nunu"))
	assert.Equal(t, "Fiddlesticks", HumanizeChampion("FiddleSticks"))
	assert.Equal(t, "Yorick", HumanizeChampion("Yorick"))
	assert.Equal(t, "", HumanizeChampion(""))
}

func TestHumanizeChampionIsTotal(t *testing.T) {
	for key, display := range championDisplayNames {
		assert.Equal(t, display, HumanizeChampion(key))
		// Display names are never keys themselves, so humanizing twice is stable
		assert.Equal(t, display, HumanizeChampion(display), key)
	}
}

func TestHumanizeLane(t *testing.T) {
	assert.Equal(t, "Top", HumanizeLane("TOP"))
	assert.Equal(t, "Jungle", HumanizeLane("JUNGLE"))
	assert.Equal(t, "Mid", HumanizeLane("MIDDLE"))
	assert.Equal(t, "ADC", HumanizeLane("BOTTOM"))
	assert.Equal(t, "Support", HumanizeLane("UTILITY"))
	assert.Equal(t, "Invalid", HumanizeLane("Invalid"))
}
