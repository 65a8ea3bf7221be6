// Package folio implements a personal investment portfolio: a JSONL
// ledger of transactions across brokerage and exchange accounts, a
// journal of atomic events derived from it, and stateless snapshot
// calculators for positions, cash, cost basis, and gains.
//
// The ledger file is the single source of truth. Everything else
// (reports, the dashboard API, alerts) is recomputed from it on demand.
package folio
