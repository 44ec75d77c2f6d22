package transform

import "sync/atomic"

// Persona is a fixed writing-voice profile assigned at transform time. It
// determines tone metadata only.
type Persona struct {
	Name  string
	Voice string
}

// Roster is the fixed persona lineup. Assignment rotates round-robin unless
// a transform explicitly overrides it.
var Roster = []Persona{
	{Name: "The Snarky Sage", Voice: "deadpan sarcasm with a heart of gold"},
	{Name: "The Down-to-Earth Buddy", Voice: "warm, chatty, tells it like a friend would"},
	{Name: "The Dry Cynic", Voice: "bone-dry wit, expects the worst, rarely disappointed"},
}

// personaPicker hands out personas round-robin. Safe for concurrent use.
type personaPicker struct {
	next atomic.Uint64
}

func (p *personaPicker) pick() Persona {
	n := p.next.Add(1) - 1
	return Roster[n%uint64(len(Roster))]
}

func personaByName(name string) (Persona, bool) {
	for _, p := range Roster {
		if p.Name == name {
			return p, true
		}
	}
	return Persona{}, false
}
