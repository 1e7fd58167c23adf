// Package dev provides live reload for the preview server.
//
// This package implements:
//   - Watcher: fsnotify-based watching of the pages directory
//   - ReloadHub: WebSocket broadcast of reload messages to browsers
//   - ClientScript: the browser side of the reload protocol
//
// # Usage
//
//	hub := dev.NewReloadHub()
//	w, err := dev.NewWatcher(dev.WatcherConfig{Dir: "pages"})
//	if err != nil {
//	    return err
//	}
//	go w.Run(ctx, func(paths []string) { hub.NotifyReload() })
//
// # Reload Protocol
//
// The browser connects to /_shwimple/reload via WebSocket.
// Messages are JSON-encoded:
//
//	{"type": "reload"}                // Triggers full page reload
//	{"type": "error", "error": "..."} // Shows error overlay
//	{"type": "clear"}                 // Clears error overlay
package dev
