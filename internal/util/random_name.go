package util

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"Bold", "Brave", "Calm", "Clever", "Crafty", "Daring", "Eager", "Gallant",
	"Gentle", "Grand", "Happy", "Hasty", "Jolly", "Keen", "Lucky", "Merry",
	"Nimble", "Patient", "Proud", "Quick", "Quiet", "Sharp", "Silent", "Sly",
	"Steady", "Stern", "Swift", "Wily", "Wise",
}

var nouns = []string{
	"Ace", "Badger", "Falcon", "Fox", "Hare", "Hawk", "Heron", "Hound",
	"Jack", "King", "Lynx", "Magpie", "Marten", "Otter", "Owl", "Queen",
	"Raven", "Stag", "Stoat", "Swan", "Weasel", "Wolf", "Wren",
}

// GetRandomName returns a random name by combining an adjective with a noun
func GetRandomName() string {
	adjectivesIndex := rand.Intn(len(adjectives))
	nounsIndex := rand.Intn(len(nouns))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], nouns[nounsIndex])
}
