package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/Ko-stant/dungeon-map-engine/internal/protocol"
)

// IndexPage renders the viewer shell: every registered map as a panel, the
// snapshot embedded as JSON for the client script, and the script itself.
func IndexPage(snapshot protocol.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, pageTop, templ.EscapeString(snapshot.PackID)); err != nil {
			return err
		}
		if err := templ.JSONScript("map-snapshot", snapshot).Render(ctx, w); err != nil {
			return err
		}
		for _, m := range snapshot.Maps {
			if err := MapPanel(m).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, pageBottom)
		return err
	})
}

const pageTop = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<title>dungeon map engine</title>
<style>
body { font-family: monospace; background: #111; color: #ddd; margin: 2rem; }
h1 { font-size: 1.2rem; }
.map-panel { border: 1px solid #333; padding: 0.5rem 1rem; margin-bottom: 1rem; }
.map-panel h2 { font-size: 1rem; }
.map-panel small { color: #888; }
pre.grid { line-height: 1.1; letter-spacing: 0.2em; }
ul { color: #9a9; }
</style>
</head>
<body>
<h1>pack: %s</h1>
<main id="maps">
`

const pageBottom = `</main>
<script>
(function () {
  var snapshotEl = document.getElementById("map-snapshot");
  if (!snapshotEl) return;
  var snapshot = JSON.parse(snapshotEl.textContent);
  var glyphs = { void: " ", floor: ".", wall: "#", portal: "+" };
  var maps = {};
  snapshot.maps.forEach(function (m) { maps[m.id] = m; });

  function redraw(m) {
    var pre = document.querySelector("#map-" + m.id + " pre.grid");
    if (!pre) return;
    var rows = [];
    for (var y = 0; y < m.height; y++) {
      rows.push(new Array(m.width).fill(" "));
    }
    m.tiles.forEach(function (t) {
      var x = t.x - m.x;
      var y = t.y - m.y;
      if (x >= 0 && x < m.width && y >= 0 && y < m.height) {
        rows[y][x] = glyphs[t.tile] || "?";
      }
    });
    pre.textContent = rows.map(function (r) { return r.join(""); }).join("\n");
  }

  var socket = new WebSocket("ws://" + location.host + "/stream");
  socket.onmessage = function (event) {
    var patch = JSON.parse(event.data);
    if (patch.type === "TileChanged") {
      var m = maps[patch.payload.mapId];
      if (!m) return;
      var hit = null;
      m.tiles.forEach(function (t) {
        if (t.x === patch.payload.x && t.y === patch.payload.y) hit = t;
      });
      if (hit) {
        hit.tile = patch.payload.tile;
      } else {
        m.tiles.push({ x: patch.payload.x, y: patch.payload.y, tile: patch.payload.tile });
      }
      redraw(m);
    } else if (patch.type === "MapLayoutChanged") {
      maps[patch.payload.map.id] = patch.payload.map;
      redraw(patch.payload.map);
    } else if (patch.type === "MapRegistered") {
      location.reload();
    } else if (patch.type === "MapRetired") {
      var panel = document.getElementById("map-" + patch.payload.mapId);
      if (panel) panel.remove();
    }
  };
})();
</script>
</body>
</html>
`
