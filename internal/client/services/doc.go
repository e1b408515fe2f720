// Package services implements the client's application logic on top of the
// transport client and the local cache repositories: identity resolution and
// view guarding, the session snapshot with its role-aware derived reads, the
// session lifecycle with its full-replace update discipline, conversations
// and messaging rules, tutor directory access and booking price calculation.
//
// Services hold mutable client state behind mutexes; the CLI layer calls
// them from the REPL goroutine while background refreshes may run
// concurrently. All state changes follow server confirmation.
package services
