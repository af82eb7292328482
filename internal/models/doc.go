// Package models defines the core domain records for Splitq.
//
// # Models
//
//   - User: registered account, read-only input to the balance engine
//   - Expense: one spending event with per-participant splits
//   - Settlement: one direct payment between two users
//   - Group: named set of member user ids that expenses/settlements can scope to
//
// # Design Principles
//
//  1. Group membership is always a bare user id string. Earlier iterations mixed
//     ids and member objects across query paths; the storage layer normalizes to
//     ids at the boundary so the engine never has to guess.
//  2. Expenses and settlements are created once and optionally deleted, never
//     edited in place. Balances are derived on read, never persisted.
//  3. Relationships use id strings instead of pointers to avoid circular
//     references between records.
package models
