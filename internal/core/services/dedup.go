package services

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// nearDuplicateMaxDistance is the levenshtein cutoff on descriptions for
// flagging a near-duplicate.
const nearDuplicateMaxDistance = 8

// Deduper prevents reprocessing of records already present in the store.
// All of its operations are pure.
type Deduper struct{}

// NewDeduper creates a Deduper.
func NewDeduper() *Deduper {
	return &Deduper{}
}

// Hash computes the 16-hex-character dedup digest over account id, date (day
// only), amount fixed to 2 decimals, lower-cased trimmed description, and
// direction. Time-of-day differences do not change the hash; any change to
// the other inputs does.
func (d *Deduper) Hash(txn domain.MappedTransaction) string {
	return digest16(
		txn.ExternalAccountID,
		txn.DayKey(),
		txn.Amount.StringFixed(2),
		strings.ToLower(strings.TrimSpace(txn.Description)),
		string(txn.Direction),
	)
}

// FilterNew returns the candidates whose external id is not in the existing
// set, preserving input order. Applying it again with the result's ids added
// to the set yields nothing: the operation is idempotent.
func (d *Deduper) FilterNew(candidates []domain.MappedTransaction, existingExternalIDs map[string]bool) []domain.MappedTransaction {
	fresh := make([]domain.MappedTransaction, 0, len(candidates))
	for _, txn := range candidates {
		if !existingExternalIDs[txn.ExternalID] {
			fresh = append(fresh, txn)
		}
	}
	return fresh
}

// GroupByAccount partitions a batch by external account id, preserving
// per-account insertion order. Every input element appears exactly once.
func (d *Deduper) GroupByAccount(txns []domain.MappedTransaction) map[string][]domain.MappedTransaction {
	groups := make(map[string][]domain.MappedTransaction)
	for _, txn := range txns {
		groups[txn.ExternalAccountID] = append(groups[txn.ExternalAccountID], txn)
	}
	return groups
}

// NearDuplicate pairs a candidate with a persisted transaction that looks
// like the same economic event under a different external id. It informs
// operator review; nothing is merged automatically.
type NearDuplicate struct {
	Candidate domain.MappedTransaction
	Existing  domain.MappedTransaction
	Distance  int
}

// NearDuplicates compares candidates against persisted transactions of the
// same account and day. A pair with differing external ids is flagged when
// the dedup hashes collide, or when amount and direction match and the
// descriptions are within a small edit distance. The latter catches the case
// where a provider starts supplying real identifiers for events previously
// keyed by the hash fallback.
func (d *Deduper) NearDuplicates(candidates, existing []domain.MappedTransaction) []NearDuplicate {
	var found []NearDuplicate
	for _, cand := range candidates {
		candHash := d.Hash(cand)
		for _, ex := range existing {
			if cand.ExternalID == ex.ExternalID {
				continue
			}
			if cand.ExternalAccountID != ex.ExternalAccountID || cand.DayKey() != ex.DayKey() {
				continue
			}
			if candHash == d.Hash(ex) {
				found = append(found, NearDuplicate{Candidate: cand, Existing: ex, Distance: 0})
				continue
			}
			if !cand.Amount.Equal(ex.Amount) || cand.Direction != ex.Direction {
				continue
			}
			dist := levenshtein.ComputeDistance(
				strings.ToLower(strings.TrimSpace(cand.Description)),
				strings.ToLower(strings.TrimSpace(ex.Description)),
			)
			if dist <= nearDuplicateMaxDistance {
				found = append(found, NearDuplicate{Candidate: cand, Existing: ex, Distance: dist})
			}
		}
	}
	return found
}
