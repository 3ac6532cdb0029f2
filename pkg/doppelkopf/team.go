package doppelkopf

import "fmt"

// Team is one of the two sides of a round. The queens of clubs define RE;
// everyone else is KO. NA means not (yet) determined.
type Team string

// team constants
const (
	TeamRE Team = "re"
	TeamKO Team = "ko"
	TeamNA Team = "na"
)

// Opponent returns the opposing team
func (t Team) Opponent() Team {
	switch t {
	case TeamRE:
		return TeamKO
	case TeamKO:
		return TeamRE
	}

	return TeamNA
}

// Teamed holds one value per team with named accessors
type Teamed[T any] struct {
	RE T `json:"re"`
	KO T `json:"ko"`
}

// Get returns the value for the team. NA has no slot.
func (t Teamed[T]) Get(team Team) T {
	switch team {
	case TeamRE:
		return t.RE
	case TeamKO:
		return t.KO
	}

	panic(fmt.Sprintf("no value for team: %s", team))
}

// Set stores the value for the team
func (t *Teamed[T]) Set(team Team, value T) {
	switch team {
	case TeamRE:
		t.RE = value
	case TeamKO:
		t.KO = value
	default:
		panic(fmt.Sprintf("no value for team: %s", team))
	}
}
