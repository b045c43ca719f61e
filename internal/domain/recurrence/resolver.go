package recurrence

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retail-backoffice/backend/internal/domain/entity"
)

// Occurrence is a due occurrence that can be committed without confirmation.
type Occurrence struct {
	Definition *entity.RecurringExpense
	Date       time.Time
	Amount     decimal.Decimal
}

// Failure records a definition whose schedule could not be computed.
type Failure struct {
	RecurringExpenseID uuid.UUID
	Err                error
}

// Resolution is the classification of a set of definitions at one instant.
type Resolution struct {
	AutoOccurrences    []Occurrence
	PendingOccurrences []*entity.PendingExpense
	Failures           []Failure
}

// ResolveAll classifies every active definition as auto-due, pending or not
// due. At most one occurrence is reported per definition, so missed periods
// are never backfilled. A malformed definition lands in Failures and does not
// affect the others.
func ResolveAll(definitions []*entity.RecurringExpense, asOf time.Time) Resolution {
	var res Resolution

	for _, def := range definitions {
		if def == nil || !def.Active {
			continue
		}

		date, due, err := DueOccurrence(def, asOf)
		if err != nil {
			res.Failures = append(res.Failures, Failure{RecurringExpenseID: def.ID, Err: err})
			continue
		}
		if !due {
			continue
		}

		if def.RequiresConfirmation {
			res.PendingOccurrences = append(res.PendingOccurrences, entity.NewPendingExpense(def, date))
			continue
		}

		res.AutoOccurrences = append(res.AutoOccurrences, Occurrence{
			Definition: def,
			Date:       date,
			Amount:     def.BaseAmount,
		})
	}

	return res
}
