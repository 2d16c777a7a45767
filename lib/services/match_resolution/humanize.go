package match_resolution

// championDisplayNames maps match-v5 championName keys to their in-game spelling.
// Keys not listed are already display names.
var championDisplayNames = map[string]string{
	"AurelionSol":  "Aurelion Sol",
	"BelVeth":      "Bel'Veth",
	"ChoGath":      "Cho'Gath",
	"DrMundo":      "Dr. Mundo",
	"FiddleSticks": "Fiddlesticks",
	"JarvanIV":     "Jarvan IV",
	"KSante":       "K'Sante",
	"KaiSa":        "Kai'Sa",
	"KhaZix":       "Kha'Zix",
	"KogMaw":       "Kog'Maw",
	"LeeSin":       "Lee Sin",
	"MasterYi":     "Master Yi",
	"MissFortune":  "Miss Fortune",
	"Nunu":         "Nunu Willump",
	"RekSai":       "Rek'Sai",
	"RenataGlasc":  "Renata Glasc",
	"TahmKench":    "Tahm Kench",
	"TwistedFate":  "Twisted Fate",
	"Velkoz":       "Vel'Koz",
	"XinZhao":      "Xin Zhao",
}

var laneDisplayNames = map[string]string{
	"TOP":     "Top",
	"JUNGLE":  "Jungle",
	"MIDDLE":  "Mid",
	"BOTTOM":  "ADC",
	"UTILITY": "Support",
}

// HumanizeChampion returns the display name of a champion key
func HumanizeChampion(name string) string {
	if display, ok := championDisplayNames[name]; ok {
		return display
	}
	return name
}

// HumanizeLane returns the display name of a position, e.g. UTILITY -> Support
func HumanizeLane(position string) string {
	if display, ok := laneDisplayNames[position]; ok {
		return display
	}
	return position
}
