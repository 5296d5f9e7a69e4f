// Package models defines the core domain models for walletwise.
//
// # Models
//
//   - User: registered account, identified by a UUID
//   - Wallet: a named ledger, PERSONAL or GROUP, in one currency
//   - Member: a user's membership (and role) in a wallet
//   - Category: EXPENSE or INCOME label, either system-wide or user-owned
//   - Transaction: an amount recorded against a wallet and category, paid
//     by one member and optionally split among debtors
//   - Split: the part of a transaction owed by one debtor
//   - Settlement: a real payment between two members to clear debt
//
// # Design Principles
//
// 1. **IDs, not pointers**: relationships are ID strings to avoid cycles
// 2. **Exact money**: amounts are decimal.Decimal, never float64
// 3. **Unix timestamps**: CreatedAt and dates are Unix seconds
//
// Balances are derived, never stored; see package calculator.
package models
