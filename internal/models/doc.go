// Package models defines the core domain models for PokerPal.
//
// # Models
//
//   - Group: the single home game hosted by a server instance, with its
//     ordered player roster
//   - Session: one recorded poker night with per-player results and buy-ins
//   - Debt: an obligation between two players, either entered manually or
//     produced by settling a session
//   - Transaction: a planned debtor-to-creditor payment (not persisted)
//   - PlayerStats: per-player aggregates derived from session history
//
// Players are identified by name strings; there are no user accounts. Access
// to the group is gated by a shared code only.
//
// # Design Principles
//
//  1. Roster order matters: sessions keep one entry per roster member in
//     roster order, so rendering and tie-breaking are reproducible.
//  2. Derived values (balances, settlement plans, statistics) are never
//     persisted; they are recomputed from the session set in view.
//  3. Avoid circular references: models link by ID strings, not pointers.
package models
