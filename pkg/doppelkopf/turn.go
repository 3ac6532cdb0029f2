package doppelkopf

// Turn is an append-only audit log entry for one card play. Turns are
// never consulted for decisions; they exist for replay.
type Turn struct {
	Trick     int    `json:"trick"`
	HandIndex int    `json:"handIndex"`
	Sequence  int    `json:"sequence"`
	Card      string `json:"card"`
}
