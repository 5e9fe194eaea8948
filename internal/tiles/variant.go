package tiles

import "github.com/gdamore/tcell/v2"

// Edges holds the socket sets of the four sides of a tile.
type Edges struct {
	Top    SocketSet `json:"top"`
	Bottom SocketSet `json:"bottom"`
	Left   SocketSet `json:"left"`
	Right  SocketSet `json:"right"`
}

// Side returns the socket set on the given edge.
func (e Edges) Side(d Direction) SocketSet {
	switch d {
	case Top:
		return e.Top
	case Bottom:
		return e.Bottom
	case Left:
		return e.Left
	case Right:
		return e.Right
	default:
		return SocketSet{}
	}
}

// Variant is a catalog entry. Variants are created once at load time and
// shared by pointer; nothing mutates them afterwards.
type Variant struct {
	ID      string `json:"id"`
	Glyph   string `json:"glyph"` // Single character for terminal rendering
	Color   string `json:"color"` // Hex color code (e.g., "#00FF00")
	Edges   Edges  `json:"sockets"`
	Road    bool   `json:"road"`
	Connect struct {
		Top    bool `json:"top"`
		Bottom bool `json:"bottom"`
		Left   bool `json:"left"`
		Right  bool `json:"right"`
	} `json:"connect"`
}

// Edge returns the socket set on side d.
func (v *Variant) Edge(d Direction) SocketSet {
	return v.Edges.Side(d)
}

// Connects reports whether traffic may leave the tile through side d.
// Non-road tiles never connect.
func (v *Variant) Connects(d Direction) bool {
	if !v.Road {
		return false
	}
	switch d {
	case Top:
		return v.Connect.Top
	case Bottom:
		return v.Connect.Bottom
	case Left:
		return v.Connect.Left
	case Right:
		return v.Connect.Right
	default:
		return false
	}
}

// Compatible reports whether v can sit on side d of other: v's edge facing
// other must equal other's edge on side d exactly.
func (v *Variant) Compatible(other *Variant, d Direction) bool {
	return v.Edge(d.Opposite()).Equal(other.Edge(d))
}

// GlyphRune returns the glyph as a rune for rendering.
func (v *Variant) GlyphRune() rune {
	for _, r := range v.Glyph {
		return r
	}
	return '?'
}

// TCellColor returns the display color, white when unset or malformed.
func (v *Variant) TCellColor() tcell.Color {
	color, err := ParseHexColor(v.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

func (v *Variant) String() string {
	return v.ID
}
