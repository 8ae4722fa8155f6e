// Package ws implements the WebSocket hub for growthmate-server.
//
// Hub manages a set of connected clients and broadcasts the vaccination
// dashboard of every live child profile on a configurable interval
// (server.stream.interval, default 30s).
//
// New(store, scheduler, interval) creates a Hub.
// Hub.Run(ctx) starts the broadcast ticker and blocks until ctx is cancelled,
// then closes all active connections.
// Hub.ServeHTTP upgrades an HTTP connection to WebSocket, sends the current
// dashboard immediately on connect, then streams updates on each tick.
//
// Message format sent to clients:
//
//	{
//	  "event": "dashboard",
//	  "data":  { "today": "...", "children": [...], "generated_at": "..." }
//	}
//
// The upgrader accepts all origins. The server mounts the hub at /ws/dashboard.
package ws
