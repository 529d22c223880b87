package domain

// PromoCode is a single-use token redeemable for a fixed premium duration.
// Codes are stored canonicalized upper-case; UsedBy/UsedAt are set exactly
// once, at redemption, and never cleared.
type PromoCode struct {
	ID             string
	Code           string
	DurationMonths int
	ProductID      string
	ProductTitle   string
	CreatedBy      string
	CreatedAt      int64
	UsedBy         *string
	UsedAt         *int64
}

// Redeemed reports whether the code was already consumed. Either marker
// counts: a redemption must hold even if the redeeming account no longer
// exists.
func (p *PromoCode) Redeemed() bool {
	return p.UsedBy != nil || p.UsedAt != nil
}
