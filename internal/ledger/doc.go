// Package ledger implements the balance computation engine.
//
// All functions are pure: they read immutable snapshots of expense and
// settlement records and return derived balances without touching shared
// state. Balances are never persisted; every view recomputes them from the
// record history.
//
// Sign convention: a positive pair balance for (perspective, counterparty)
// means the counterparty owes the perspective user; negative means the
// perspective user owes. Paid splits and records where either party is not
// involved contribute nothing.
package ledger
