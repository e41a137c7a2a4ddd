package palette

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

const paletteFile = "palette.json"

// Definition is the JSON form of a palette, colours as hex strings.
type Definition struct {
	InMaze    string `json:"inMaze"`
	Frontier  string `json:"frontier"`
	Unvisited string `json:"unvisited"`
	Wall      string `json:"wall"`
	Status    string `json:"status"`
}

// Palette holds the resolved terminal colours.
type Palette struct {
	InMaze    tcell.Color
	Frontier  tcell.Color
	Unvisited tcell.Color
	Wall      tcell.Color
	Status    tcell.Color
}

// Load reads the embedded palette.
func Load() (Palette, error) {
	content, err := dataFS.ReadFile(paletteFile)
	if err != nil {
		return Palette{}, fmt.Errorf("failed to read embedded file %s: %w", paletteFile, err)
	}
	return Parse(content)
}

// Parse decodes a JSON palette definition.
func Parse(content []byte) (Palette, error) {
	var def Definition
	if err := json.Unmarshal(content, &def); err != nil {
		return Palette{}, fmt.Errorf("failed to parse palette JSON: %w", err)
	}
	return def.Resolve()
}

// Resolve converts every hex colour in the definition.
func (d Definition) Resolve() (Palette, error) {
	var p Palette
	fields := []struct {
		name string
		hex  string
		dst  *tcell.Color
	}{
		{"inMaze", d.InMaze, &p.InMaze},
		{"frontier", d.Frontier, &p.Frontier},
		{"unvisited", d.Unvisited, &p.Unvisited},
		{"wall", d.Wall, &p.Wall},
		{"status", d.Status, &p.Status},
	}
	for _, f := range fields {
		c, err := ParseHexColor(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("palette %s: %w", f.name, err)
		}
		*f.dst = c
	}
	return p, nil
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid red component in %s: %w", hex, err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid green component in %s: %w", hex, err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid blue component in %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}
