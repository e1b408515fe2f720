// Package cli provides the interactive TutorIT command-line client.
//
// It wires configuration, the local cache, API services, and an interactive
// REPL guarded by the identity gate. Typical flow: resolve the stored
// identity (or prompt for credentials), start a background connectivity
// watcher, and execute role-aware commands.
//
// Key features:
//   - Login / Register / Logout with fail-closed identity resolution
//   - Tutor discovery and profile editing
//   - Booking with an upfront price quote
//   - Session lifecycle: start, cancel, remove, end, rate
//   - Conversations: send, soft-delete, emoji reactions
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
