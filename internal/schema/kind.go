// Package schema guarantees that every record read from a collection file
// conforms to a fixed per-kind schema before any other code touches it.
// Missing or malformed fields are replaced with defaults; normalization
// never fails on bad input.
package schema

// Kind identifies one of the marketplace collections.
type Kind string

const (
	KindOffers      Kind = "offers"
	KindBids        Kind = "bids"
	KindMsmeProfile Kind = "msme_profile" // single object, not a list
	KindRfps        Kind = "rfps"
	KindMsmes       Kind = "msmes"
)

// Kinds returns all collection kinds in their canonical repair order.
func Kinds() []Kind {
	return []Kind{KindOffers, KindBids, KindMsmeProfile, KindRfps, KindMsmes}
}
