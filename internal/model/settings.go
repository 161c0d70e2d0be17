package model

// Settings are user preferences persisted alongside the collections.
type Settings struct {
	DefaultView   string `json:"defaultView"`
	SortKey       string `json:"sortKey"`
	ShowCompleted bool   `json:"showCompleted"`
}

func DefaultSettings() Settings {
	return Settings{
		DefaultView: "next",
		SortKey:     "due",
	}
}
