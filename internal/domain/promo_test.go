package domain

import "testing"

func TestPromoCodeRedeemed(t *testing.T) {
	user := "u1"
	at := int64(1_700_000_000_000)

	tests := []struct {
		name string
		code PromoCode
		want bool
	}{
		{"fresh", PromoCode{}, false},
		{"redeemed", PromoCode{UsedBy: &user, UsedAt: &at}, true},
		// the redeeming account was deleted; the code stays spent
		{"tombstone without account", PromoCode{UsedAt: &at}, true},
		{"marker without timestamp", PromoCode{UsedBy: &user}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.Redeemed(); got != tt.want {
				t.Errorf("Redeemed() = %v, want %v", got, tt.want)
			}
		})
	}
}
