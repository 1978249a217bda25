// Package service provides the business logic layer for the memory game.
//
// The service package implements:
//   - Multi-session game management
//   - Preset resolution and media discovery
//   - Flip and acknowledge processing
//   - Event to message translation for clients
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages preset loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. It owns the only lock around engine calls, so each engine
// sees one command at a time no matter how many clients are connected.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Create a new session
//	info, err := gameService.CreateSession(ctx, service.CreateSessionRequest{ConfigID: "family"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Play a turn
//	result, err := gameService.Flip(ctx, info.ID, 3)
//	result, err = gameService.Flip(ctx, info.ID, 7)
//	if result.State.Phase == engine.Resolving {
//		result, err = gameService.Acknowledge(ctx, info.ID)
//	}
//
// Errors:
//
// Rejected commands keep the engine sentinels in their chain, so callers can
// test them with engine.IsInvalidOperation and engine.IsConfigurationError.
// Unknown sessions wrap ErrSessionNotFound.
package service
