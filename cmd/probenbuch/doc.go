// Package main hosts the probenbuch CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into Baserow
// API calls: login and credential persistence, rehearsal listing, creation
// and editing, and sheet-music catalog maintenance. It centralizes
// configuration resolution and structured logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
