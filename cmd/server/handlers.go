package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/Ko-stant/dungeon-map-engine/internal/protocol"
	"github.com/Ko-stant/dungeon-map-engine/internal/web/views"
	"github.com/Ko-stant/dungeon-map-engine/internal/ws"
)

// registerRoutes wires the HTTP surface: the index page, the patch stream,
// and a health probe.
func registerRoutes(mux *http.ServeMux, svc MapService, hub *ws.Hub, logger Logger) {
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if err := views.IndexPage(svc.Snapshot()).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render index", http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"viewers": hub.Count(),
		})
	})

	mux.HandleFunc("/stream", func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Printf("websocket accept failed: %v", err)
			return
		}
		hub.Add(c)

		snap := svc.Snapshot()
		hello, _ := json.Marshal(protocol.PatchEnvelope{
			Sequence: 0,
			EventID:  snap.LastEventID,
			Type:     "SnapshotSync",
			Payload:  snap,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		_ = c.Write(ctx, websocket.MessageText, hello)
		cancel()

		go readIntents(c, svc, hub, logger)
	})
}

// readIntents drains one viewer connection, applying each intent it carries.
// Malformed frames are skipped; the loop ends when the connection does.
func readIntents(c *websocket.Conn, svc MapService, hub *ws.Hub, logger Logger) {
	defer hub.Remove(c)
	defer c.Close(websocket.StatusNormalClosure, "")

	for {
		_, data, err := c.Read(context.Background())
		if err != nil {
			return
		}
		var env protocol.IntentEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}
		processIntent(svc, hub, logger, env)
	}
}

// processIntent dispatches one intent envelope to the map service and
// publishes the resulting patches, or an IntentRejected when the service
// refuses it.
func processIntent(svc MapService, hub Broadcaster, logger Logger, env protocol.IntentEnvelope) {
	switch env.Type {
	case "RequestPaintTile":
		var req protocol.RequestPaintTile
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return
		}
		patches, err := svc.PaintTile(req)
		if err != nil {
			reject(svc, hub, logger, env.Type, err)
			return
		}
		for _, patch := range patches {
			hub.Publish(svc.NextEventID(), "TileChanged", patch)
		}

	case "RequestRotateMap":
		var req protocol.RequestRotateMap
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return
		}
		patch, err := svc.RotateMap(req)
		if err != nil {
			reject(svc, hub, logger, env.Type, err)
			return
		}
		hub.Publish(svc.NextEventID(), "MapLayoutChanged", *patch)

	case "RequestAddPortal":
		var req protocol.RequestAddPortal
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return
		}
		patch, err := svc.AddPortal(req)
		if err != nil {
			reject(svc, hub, logger, env.Type, err)
			return
		}
		hub.Publish(svc.NextEventID(), "MapLayoutChanged", *patch)

	case "RequestLinkSubMap":
		var req protocol.RequestLinkSubMap
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return
		}
		patch, err := svc.LinkSubMap(req)
		if err != nil {
			reject(svc, hub, logger, env.Type, err)
			return
		}
		hub.Publish(svc.NextEventID(), "MapLayoutChanged", *patch)

	case "RequestCloneMap":
		var req protocol.RequestCloneMap
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return
		}
		patch, err := svc.CloneMap(req)
		if err != nil {
			reject(svc, hub, logger, env.Type, err)
			return
		}
		hub.Publish(svc.NextEventID(), "MapRegistered", *patch)

	case "RequestRetireMap":
		var req protocol.RequestRetireMap
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return
		}
		patch, err := svc.RetireMap(req)
		if err != nil {
			reject(svc, hub, logger, env.Type, err)
			return
		}
		hub.Publish(svc.NextEventID(), "MapRetired", *patch)

	default:
		// Unknown intent type
	}
}

func reject(svc MapService, hub Broadcaster, logger Logger, intent string, err error) {
	logger.Printf("intent %s rejected: %v", intent, err)
	hub.Publish(svc.NextEventID(), "IntentRejected", protocol.IntentRejected{
		Intent: intent,
		Reason: err.Error(),
	})
}
