package exchange

// auction tracks the best qualifying bid per impression for a single
// mediation call. Construct with newAuction.
type auction struct {
	// winners maps imp.id to the highest-priced qualifying bid seen so far.
	winners map[string]seatedBid
}

// seatedBid pairs a mediation bid with the seat that submitted it.
type seatedBid struct {
	seat string
	bid  MediationBid
}

func newAuction(numImps int) *auction {
	return &auction{
		winners: make(map[string]seatedBid, numImps),
	}
}

// addBid should be called for each bid, in bidder submission order. Bids below
// the floor (inclusive) are discarded. A later bid replaces the current winner
// only on a strictly higher price, so ties go to the earliest-submitted bidder.
func (a *auction) addBid(seat string, bid MediationBid, floor *float64) {
	if floor != nil && bid.Price < *floor {
		return
	}

	current, ok := a.winners[bid.ImpID]
	if !ok || bid.Price > current.bid.Price {
		a.winners[bid.ImpID] = seatedBid{seat: seat, bid: bid}
	}
}

// winner returns the winning bid for an impression, if any bid qualified.
func (a *auction) winner(impID string) (seatedBid, bool) {
	win, ok := a.winners[impID]
	return win, ok
}
