package maze

import "fmt"

// Direction is one of the four compass directions a passage can run in.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in wall order (N, E, S, W).
var Directions = [4]Direction{North, East, South, West}

// Opposite returns the direction pointing back the way d came.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Left returns the direction 90 degrees counter-clockwise from d.
func (d Direction) Left() Direction {
	return (d + 3) % 4
}

// Right returns the direction 90 degrees clockwise from d.
func (d Direction) Right() Direction {
	return (d + 1) % 4
}

// Valid reports whether d is one of the four compass directions.
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection maps a direction name ("north", "N", "North", ...) to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "n", "N", "north", "North":
		return North, nil
	case "e", "E", "east", "East":
		return East, nil
	case "s", "S", "south", "South":
		return South, nil
	case "w", "W", "west", "West":
		return West, nil
	}
	return 0, fmt.Errorf("%w: unknown direction %q", ErrConfiguration, s)
}

// Cell represents a single cell in a maze grid.
type Cell struct {
	Index int     // Index of the cell, y*colCnt + x.
	X     int     // Column of the cell.
	Y     int     // Row of the cell.
	Walls [4]bool // Walls[d] is true when there is no passage in direction d.
	Open  bool    // Open marks the cell as part of the maze.
}

// HasWall reports whether the cell is walled off in direction d.
func (c *Cell) HasWall(d Direction) bool {
	return c.Walls[d]
}

// PassageCount returns the number of sides of the cell without a wall.
func (c *Cell) PassageCount() int {
	n := 0
	for _, w := range c.Walls {
		if !w {
			n++
		}
	}
	return n
}

func (c *Cell) reset() {
	c.Walls = [4]bool{true, true, true, true}
	c.Open = false
}
