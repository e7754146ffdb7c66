package benefit

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/admission-benefits/generic"
)

// maxInstallments bounds how many installments one total may be split into.
const maxInstallments = 10000

// Split breaks total into installments of at most limit.
//
//   - total = 0      -> no installments
//   - total < limit  -> one installment equal to total
//   - otherwise      -> floor(total/limit) installments of limit; a non-zero
//     remainder is folded into the last of them
//
// Only a merged tail may exceed limit. The installments always sum to total.
// More than maxInstallments full installments is ErrInvalidCap.
func Split(total, limit generic.Amount) ([]generic.Amount, error) {
	if !limit.IsPositive() {
		return nil, generic.ErrInvalidCap
	}
	if total.IsNegative() {
		return nil, generic.ErrNegativeAmount
	}
	if total.IsZero() {
		return []generic.Amount{}, nil
	}

	full, remainder := total.Value.QuoRem(limit.Value, 0)
	if full.GreaterThan(decimal.NewFromInt(maxInstallments)) {
		return nil, fmt.Errorf("%w: %s / %s exceeds %d installments", generic.ErrInvalidCap, total, limit, maxInstallments)
	}
	count := int(full.IntPart())

	installments := make([]generic.Amount, 0, count+1)
	for i := 0; i < count; i++ {
		installments = append(installments, generic.Amount{Value: limit.Value, Unit: total.Unit})
	}
	if remainder.IsPositive() {
		installments = append(installments, generic.Amount{Value: remainder, Unit: total.Unit})
	}

	// A short tail never stands alone.
	if n := len(installments); n > 1 && installments[n-1].LessThan(limit) {
		installments[n-2] = installments[n-2].Add(installments[n-1])
		installments = installments[:n-1]
	}
	return installments, nil
}
