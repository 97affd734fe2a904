package timeline

import (
	"fmt"

	"github.com/planny/planny-backend/internal/planning/domain"
)

// DistributionError reports input the distributor cannot schedule.
type DistributionError struct {
	Range  domain.DateRange
	Reason string
}

func (e *DistributionError) Error() string {
	return fmt.Sprintf("cannot distribute over %s..%s: %s",
		domain.FormatDate(e.Range.Start), domain.FormatDate(e.Range.End), e.Reason)
}
