package world

import "fmt"

// Grid dimensions and landmark positions of the KBC map.
const (
	DefaultWidth  = 5
	DefaultHeight = 5
)

var (
	StartPos   = Pos{X: 2, Y: 2}
	OraclePos  = Pos{X: 1, Y: 1}
	LibraryPos = Pos{X: 3, Y: 3}
)

// Pos is a grid coordinate; y grows southwards.
type Pos struct {
	X, Y int
}

// Kind tags what a tile does.
type Kind int

const (
	Plain Kind = iota
	Oracle
	Library
)

func (k Kind) String() string {
	switch k {
	case Oracle:
		return "Oracle"
	case Library:
		return "Library"
	default:
		return "Plain"
	}
}

// Tile is one cell of the grid.
type Tile struct {
	Kind Kind
	Name string
}

// Direction is a movement command.
type Direction struct {
	Name   string
	DX, DY int
}

var (
	North = Direction{Name: "north", DY: -1}
	South = Direction{Name: "south", DY: 1}
	East  = Direction{Name: "east", DX: 1}
	West  = Direction{Name: "west", DX: -1}
)

// ParseDirection maps full and one-letter commands to a direction.
func ParseDirection(cmd string) (Direction, bool) {
	switch cmd {
	case "north", "n":
		return North, true
	case "south", "s":
		return South, true
	case "east", "e":
		return East, true
	case "west", "w":
		return West, true
	}
	return Direction{}, false
}

// Map is a rectangular grid of tiles.
type Map struct {
	Width, Height int
	tiles         [][]Tile
}

// NewMap builds the KBC grid with the Oracle and Library at their fixed spots.
func NewMap(width, height int) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("map size must be positive, got %dx%d", width, height)
	}
	m := &Map{Width: width, Height: height, tiles: make([][]Tile, height)}
	for y := 0; y < height; y++ {
		row := make([]Tile, width)
		for x := 0; x < width; x++ {
			switch (Pos{X: x, Y: y}) {
			case OraclePos:
				row[x] = Tile{Kind: Oracle, Name: "Oracle"}
			case LibraryPos:
				row[x] = Tile{Kind: Library, Name: "Library"}
			default:
				row[x] = Tile{Kind: Plain, Name: fmt.Sprintf("Open field (%d,%d)", x, y)}
			}
		}
		m.tiles[y] = row
	}
	return m, nil
}

// In reports whether p lies on the grid.
func (m *Map) In(p Pos) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// At returns the tile at p. p must be on the grid.
func (m *Map) At(p Pos) Tile {
	return m.tiles[p.Y][p.X]
}

// Player is the avatar's position and age. XP lives in the ledger.
type Player struct {
	Pos Pos
	Age int
}

// Tick advances the avatar's age by one turn.
func (p *Player) Tick() {
	p.Age++
}

// Move steps the player in d if the target is on the map.
func (p *Player) Move(m *Map, d Direction) bool {
	next := Pos{X: p.Pos.X + d.DX, Y: p.Pos.Y + d.DY}
	if !m.In(next) {
		return false
	}
	p.Pos = next
	return true
}
