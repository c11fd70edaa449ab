package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"stock_tracker/internal/feature/portfolio/domain/entity"
)

// ParseHoldings parses "CODE:LOT,CODE:LOT". Blank entries are ignored; malformed
// entries are skipped and reported individually, the rest of the batch is kept.
func ParseHoldings(input string) ([]entity.Holding, []error) {
	var (
		holdings []entity.Holding
		errs     []error
	)
	for _, part := range strings.Split(input, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		h, err := parseHolding(part)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		holdings = append(holdings, h)
	}
	return holdings, errs
}

func parseHolding(part string) (entity.Holding, error) {
	code, lotStr, ok := strings.Cut(part, ":")
	code = strings.TrimSpace(code)
	lotStr = strings.TrimSpace(lotStr)
	if !ok || code == "" || strings.Contains(lotStr, ":") {
		return entity.Holding{}, fmt.Errorf("%w: %q", ErrInvalidHolding, strings.TrimSpace(part))
	}
	lot, err := strconv.ParseInt(lotStr, 10, 64)
	if err != nil || lot <= 0 {
		return entity.Holding{}, fmt.Errorf("%w: %q: lot must be a positive integer", ErrInvalidHolding, strings.TrimSpace(part))
	}
	return entity.Holding{Code: code, Lot: lot}, nil
}
