package riot

import "strings"

// Routing values of the regional Riot API hosts
const (
	RoutingEurope   = "europe"
	RoutingAmericas = "americas"
	RoutingAsia     = "asia"
	RoutingSEA      = "sea"
)

// platformPrefixes are the match id prefixes issued by each platform
var platformPrefixes = []string{
	"EUW1_", "EUN1_", "NA1_", "KR_", "BR1_", "JP1_",
	"LA1_", "LA2_", "OC1_", "TR1_", "RU_",
}

// opggRouting maps the op.gg platform slug to the routing value of its account and match APIs
var opggRouting = map[string]string{
	"euw":  RoutingEurope,
	"eune": RoutingEurope,
	"tr":   RoutingEurope,
	"ru":   RoutingEurope,
	"me":   RoutingEurope,
	"na":   RoutingAmericas,
	"br":   RoutingAmericas,
	"lan":  RoutingAmericas,
	"las":  RoutingAmericas,
	"kr":   RoutingAsia,
	"jp":   RoutingAsia,
	"oce":  RoutingSEA,
	"sg":   RoutingSEA,
	"tw":   RoutingSEA,
	"vn":   RoutingSEA,
	"ph":   RoutingSEA,
	"th":   RoutingSEA,
}

// RoutingForPlatform returns the routing value for an op.gg platform slug, or "" when unknown
func RoutingForPlatform(platform string) string {
	return opggRouting[strings.ToLower(platform)]
}

// HasPlatformPrefix reports whether a match id already carries a known platform prefix
func HasPlatformPrefix(matchID string) bool {
	for _, prefix := range platformPrefixes {
		if strings.HasPrefix(matchID, prefix) {
			return true
		}
	}
	return false
}

// NormalizeMatchID prepends defaultPlatform (e.g. "EUW1") to bare numeric match ids
func NormalizeMatchID(matchID, defaultPlatform string) string {
	if HasPlatformPrefix(matchID) {
		return matchID
	}
	return strings.TrimSuffix(defaultPlatform, "_") + "_" + matchID
}
