package models

// World is the mutable state of one adventure. It is the single source of
// truth during a session.
type World struct {
	Title         string
	Summary       string
	StartLocation string
	Locations     map[string]*Location
	LocationOrder []string // declaration order
	Player        *Player
}

// Location represents a specific place in the world.
type Location struct {
	ID          string
	Name        string
	Image       string
	Description string
	Details     string
	Objects     []*Object
	Actors      []*Actor
	Pathways    []*Pathway
}

// Object is an item owned by exactly one container: a Location or the
// player's inventory.
type Object struct {
	ID          string
	Name        string
	Description string
	Portable    bool
	Movable     bool
	State       map[string]Value
}

// Actor is a character the player can talk to.
type Actor struct {
	ID       string
	Name     string
	Persona  string
	Dialogue map[string]string
}

// Pathway connects a location to a destination location.
type Pathway struct {
	ID          string
	Label       string
	Destination string
	Hidden      bool
	Locked      bool
	UnlocksWith string // object id that opens a locked pathway
	RevealsWith string // object id whose inspection uncovers a hidden pathway
}

// Player is the adventurer and the second kind of object container.
type Player struct {
	Name        string
	Description string
	Location    string
	Inventory   []*Object // acquisition order
}
