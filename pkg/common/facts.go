package common

import (
	"github.com/duke-git/lancet/v2/random"
)

var spaceFacts = []string{
	"A day on Venus is longer than a year on Venus.",
	"There are more stars in the universe than grains of sand on all Earth's beaches.",
	"Neutron stars can spin up to 600 times per second.",
	"One million Earths could fit inside the Sun.",
	"A year on Mercury lasts only 88 Earth days.",
	"There's a planet that may be made largely of diamond: 55 Cancri e.",
	"Space smells like seared steak and hot metal, according to astronauts.",
	"The footprints on the Moon could last for millions of years.",
	"Saturn could float on water because it's mostly made of gas.",
	"Jupiter's Great Red Spot is a storm larger than Earth that has lasted over 300 years.",
}

func SpaceFacts() []string {
	return append([]string(nil), spaceFacts...)
}

func RandomSpaceFact() string {
	return spaceFacts[random.RandInt(0, len(spaceFacts))]
}

// LoadingMessage is shown while the dataset is being fetched.
func LoadingMessage(fact string) string {
	return "🚀 Loading images... Did you know? " + fact
}
