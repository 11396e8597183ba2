package model

// Member is a traveller on the trip roster (a row in members.csv).
type Member struct {
	ID    string // short handle used in splits, e.g. "ana"
	Name  string
	Email string
}

// DisplayName returns Name, falling back to ID.
func (m Member) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}
