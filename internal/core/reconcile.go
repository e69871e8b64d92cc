package core

// Reconcile flags transactions that duplicate an earlier amount within
// tolerance. Greedy single pass in input order: each transaction's amount is
// quantized to two decimals and compared against the amounts seen so far; on
// a hit the transaction is reported as a match and its amount does not
// extend the seen set, otherwise the amount becomes a reference point for
// later transactions. Unpersisted transactions (id 0) are never reported and
// never extend the seen set.
//
// Tolerance 0 means exact two-decimal matching. The policy is deliberately
// first-match rather than an optimal pairing, so results are deterministic
// for a fixed input order.
func Reconcile(txs []Transaction, tolerance Money) []int64 {
	var matched []int64
	var seen []Money
	for _, tx := range txs {
		key := tx.Amount.Quantize(2)
		hit := false
		for _, s := range seen {
			if s.Sub(key).Abs().Cmp(tolerance) <= 0 {
				hit = true
				break
			}
		}
		if hit {
			if tx.ID != 0 {
				matched = append(matched, tx.ID)
			}
			continue
		}
		if tx.ID != 0 {
			seen = append(seen, key)
		}
	}
	return matched
}
