package model

import "strings"

// ClientMatchPolicy decides whether the client embedded in a saved invoice
// is already on the client list.
type ClientMatchPolicy interface {
	// Match returns the index of the known client c corresponds to.
	Match(known []Client, c Client) (int, bool)
}

// ClientMatchFunc adapts a function to ClientMatchPolicy.
type ClientMatchFunc func(known []Client, c Client) (int, bool)

func (f ClientMatchFunc) Match(known []Client, c Client) (int, bool) { return f(known, c) }

// MatchByIDOrName matches by id first, then by name ignoring case.
var MatchByIDOrName ClientMatchPolicy = ClientMatchFunc(func(known []Client, c Client) (int, bool) {
	for i, k := range known {
		if k.ID == c.ID {
			return i, true
		}
	}
	for i, k := range known {
		if strings.EqualFold(k.Name, c.Name) {
			return i, true
		}
	}
	return -1, false
})
