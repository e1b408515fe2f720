package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/tutorit/internal/logging"
)

// PlatformFeeRate is the fraction of the lesson subtotal charged by the
// platform on every booking.
var PlatformFeeRate = decimal.NewFromFloat(0.10)

// durationHours maps the duration labels offered by the booking form to
// their length in hours. Labels are matched exactly, case sensitive.
var durationHours = map[string]decimal.Decimal{
	"1 hour":    decimal.NewFromInt(1),
	"1.5 hours": decimal.NewFromFloat(1.5),
	"2 hours":   decimal.NewFromInt(2),
	"3 hours":   decimal.NewFromInt(3),
}

// DurationLabels returns the supported duration labels sorted by length.
func DurationLabels() []string {
	labels := make([]string, 0, len(durationHours))
	for l := range durationHours {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		return durationHours[labels[i]].LessThan(durationHours[labels[j]])
	})
	return labels
}

// Calculator derives lesson length and price from a tutor's hourly rate
// and a duration label picked on the booking form.
type Calculator struct {
	log logging.Logger
}

func NewCalculator(log logging.Logger) *Calculator {
	return &Calculator{log: log}
}

// Hours resolves a duration label to a length in hours. Unknown labels
// fall back to one hour so a stale or mistyped label never blocks a
// booking outright.
func (c *Calculator) Hours(ctx context.Context, label string) decimal.Decimal {
	if h, ok := durationHours[label]; ok {
		return h
	}
	c.log.Warn(ctx, "unknown duration label, assuming 1 hour", "label", label)
	return decimal.NewFromInt(1)
}

// Minutes resolves a duration label to whole minutes for the session record.
func (c *Calculator) Minutes(ctx context.Context, label string) int {
	return int(c.Hours(ctx, label).Mul(decimal.NewFromInt(60)).IntPart())
}

// Subtotal is the tutor's charge for the lesson before any platform fee.
func (c *Calculator) Subtotal(ctx context.Context, hourlyRate decimal.Decimal, label string) decimal.Decimal {
	return hourlyRate.Mul(c.Hours(ctx, label))
}

// Fee is the platform fee for a given subtotal.
func (c *Calculator) Fee(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(PlatformFeeRate).Round(2)
}

// Total is the amount the student pays: subtotal plus an explicit fee.
func (c *Calculator) Total(ctx context.Context, hourlyRate decimal.Decimal, label string, fee decimal.Decimal) decimal.Decimal {
	return c.Subtotal(ctx, hourlyRate, label).Add(fee).Round(2)
}

// Quote bundles the figures shown on the booking confirmation screen.
type Quote struct {
	Hours    decimal.Decimal
	Subtotal decimal.Decimal
	Fee      decimal.Decimal
	Total    decimal.Decimal
}

// QuoteFor prices a lesson with the standard platform fee applied.
func (c *Calculator) QuoteFor(ctx context.Context, hourlyRate decimal.Decimal, label string) Quote {
	hours := c.Hours(ctx, label)
	subtotal := hourlyRate.Mul(hours)
	fee := c.Fee(subtotal)
	return Quote{
		Hours:    hours,
		Subtotal: subtotal.Round(2),
		Fee:      fee,
		Total:    subtotal.Add(fee).Round(2),
	}
}
