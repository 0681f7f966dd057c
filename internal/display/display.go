package display

import (
	"fmt"
	"io"

	"github.com/iskorotkov/atm-cash-distribution/internal/distributor"
	"github.com/iskorotkov/atm-cash-distribution/internal/domain"
)

// Lines renders one line per dispensed denomination, following the order of denominations.
func Lines(dist domain.Distribution, denominations distributor.Denominations) []string {
	quantities := dist.Map()

	lines := make([]string, 0, len(dist.Items))
	for _, denomination := range denominations {
		quantity, ok := quantities[denomination]
		if !ok {
			continue
		}

		lines = append(lines, fmt.Sprintf("%d %s(s) of %s€", quantity, domain.UnitOf(denomination), denomination))
	}

	return lines
}

func Write(w io.Writer, dist domain.Distribution, denominations distributor.Denominations) error {
	for _, line := range Lines(dist, denominations) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write line: %w", err)
		}
	}

	return nil
}
