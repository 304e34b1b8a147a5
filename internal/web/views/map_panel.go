package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/Ko-stant/dungeon-map-engine/internal/protocol"
)

var tileGlyphs = map[string]rune{
	"void":   ' ',
	"floor":  '.',
	"wall":   '#',
	"portal": '+',
}

// MapPanel renders one registered map as a glyph grid with its portal and
// sub-map listings.
func MapPanel(m protocol.MapLite) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="map-panel" id="map-%d">`, m.ID); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<h2>%s <small>#%d, %dx%d at (%d,%d), %d regions</small></h2>`,
			templ.EscapeString(m.Name), m.ID, m.Width, m.Height, m.X, m.Y, m.RegionsCount); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<pre class="grid">%s</pre>`, templ.EscapeString(renderGrid(m))); err != nil {
			return err
		}
		interior, boundary := containmentCounts(m)
		if _, err := fmt.Fprintf(w, `<small>%d interior, %d boundary cells</small>`, interior, boundary); err != nil {
			return err
		}
		if err := renderPortalList(w, m); err != nil {
			return err
		}
		if err := renderSubMapList(w, m); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

// renderGrid lays the map's resolved tiles out as one glyph per cell,
// anchored at the map's own position.
func renderGrid(m protocol.MapLite) string {
	if m.Width <= 0 || m.Height <= 0 {
		return ""
	}
	rows := make([][]rune, m.Height)
	for i := range rows {
		rows[i] = []rune(strings.Repeat(" ", m.Width))
	}
	for _, tile := range m.Tiles {
		x := tile.X - m.X
		y := tile.Y - m.Y
		if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
			continue
		}
		glyph, ok := tileGlyphs[tile.Tile]
		if !ok {
			glyph = '?'
		}
		rows[y][x] = glyph
	}
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// containmentCounts tallies the snapshot's per-tile classification: interior
// cells are fully surrounded by resolved content, boundary cells sit on an
// edge of it.
func containmentCounts(m protocol.MapLite) (interior, boundary int) {
	for _, tile := range m.Tiles {
		switch tile.Containment {
		case "contained":
			interior++
		case "intersecting":
			boundary++
		}
	}
	return interior, boundary
}

func renderPortalList(w io.Writer, m protocol.MapLite) error {
	if len(m.Portals) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, `<ul class="portals">`); err != nil {
		return err
	}
	for _, p := range m.Portals {
		if _, err := fmt.Fprintf(w, `<li>portal %d at (%d,%d) facing %s into map %d at (%d,%d)</li>`,
			p.Index, p.X, p.Y, templ.EscapeString(p.Facing), p.Target, p.RemoteX, p.RemoteY); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul>`)
	return err
}

func renderSubMapList(w io.Writer, m protocol.MapLite) error {
	if len(m.SubMaps) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, `<ul class="submaps">`); err != nil {
		return err
	}
	for _, link := range m.SubMaps {
		if _, err := fmt.Fprintf(w, `<li>sub-map %d: map %d at offset (%d,%d)</li>`,
			link.Index, link.Target, link.OffsetX, link.OffsetY); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</ul>`)
	return err
}
