// Package session provides session management for the memory game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the in-memory session store used by the service layer. Each
// session holds one game engine together with the preset, media pool and
// roster needed to restart it.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. Lookups are
// case-insensitive and generated IDs never collide with a live session.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Store a new game
//	sess, err := manager.Create("", game)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session
//	sess, err = manager.Get(sessionID)
//
// Cleanup:
//
// Sessions are not persisted. CleanupExpiredSessions drops sessions that
// have not been accessed within the given age.
package session
