package discount

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/avaldez-dev/storefront-pricing/pkg/db/models"
	pkgerrors "github.com/avaldez-dev/storefront-pricing/pkg/errors"
	"github.com/google/uuid"
)

// codeAlphabet omits 0/O/1/I lookalikes so codes survive being read aloud.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const defaultCouponFormat = "######"

// GenerateCoupons renders count unique codes from the discount's format
// mask. Every '#' becomes a random alphabet character; other runes are kept
// literal, so "SUMMER-####" yields codes like "SUMMER-X7KQ". maxUses applies
// per generated code, zero for unlimited.
func GenerateCoupons(d *models.Discount, count int, maxUses int64) ([]models.Coupon, error) {
	if count <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon count must be positive")
	}
	format := d.CouponFormat
	if format == "" {
		format = defaultCouponFormat
	}
	if !strings.ContainsRune(format, '#') {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			"coupon format must contain at least one # placeholder")
	}

	seen := make(map[string]struct{}, count)
	coupons := make([]models.Coupon, 0, count)
	attempts := 0
	for len(coupons) < count {
		attempts++
		if attempts > count*20 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				"coupon format cannot produce enough unique codes")
		}
		code, err := renderCode(format)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		coupons = append(coupons, models.Coupon{
			ID:         uuid.New(),
			DiscountID: d.ID,
			Code:       code,
			MaxUses:    maxUses,
		})
	}
	return coupons, nil
}

func renderCode(format string) (string, error) {
	var b strings.Builder
	for _, r := range format {
		if r != '#' {
			b.WriteRune(r)
			continue
		}
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}
