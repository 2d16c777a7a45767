package ddragon

// itemCatalog is /cdn/{version}/data/en_US/item.json, keyed by item id
type itemCatalog struct {
	Data map[string]struct {
		Name string `json:"name"`
	} `json:"data"`
}

// runeTree is one element of /cdn/{version}/data/en_US/runesReforged.json
type runeTree struct {
	ID    int    `json:"id"`
	Key   string `json:"key"`
	Name  string `json:"name"`
	Slots []struct {
		Runes []struct {
			ID   int    `json:"id"`
			Key  string `json:"key"`
			Name string `json:"name"`
		} `json:"runes"`
	} `json:"slots"`
}
