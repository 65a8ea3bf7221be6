package folio

import (
	"iter"
	"strings"
)

// Search returns the transactions whose ticker, account, memo or
// command contains the query, case insensitively. An empty query
// matches everything. Results keep the ledger's chronological order.
func (l *Ledger) Search(query string) iter.Seq2[int, Transaction] {
	q := strings.ToLower(strings.TrimSpace(query))
	return l.Transactions(func(tx Transaction) bool {
		return q == "" || matchesQuery(tx, q)
	})
}

func matchesQuery(tx Transaction, q string) bool {
	fields := []string{string(tx.What()), tx.Where(), tx.Note()}
	if s, ok := tx.(interface{ Which() string }); ok {
		fields = append(fields, s.Which())
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
