package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/tutorit/internal/client/models"
)

func needArg(args []string, usage string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: %s", usage)
	}
	return args[0], nil
}

func needInt64Arg(args []string, usage string) (int64, error) {
	s, err := needArg(args, usage)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	return id, nil
}

func formatMoney(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return "$" + d.StringFixed(2)
}

func formatRate(d decimal.Decimal) string {
	return "$" + d.StringFixed(2) + "/hr"
}

func formatRating(r *float64) string {
	if r == nil {
		return "no reviews yet"
	}
	return fmt.Sprintf("%.1f", *r)
}

func formatSessionLine(s models.Session, viewer models.Role) string {
	other := s.TutorName
	if viewer == models.RoleTutor {
		other = s.StudentName
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s", s.ID, s.DateTime.Local().Format("2006-01-02 15:04"), s.Status)
	if other != "" {
		fmt.Fprintf(&b, "  with %s", other)
	}
	fmt.Fprintf(&b, "  %s", s.Subject)
	if s.Topic != "" {
		fmt.Fprintf(&b, " (%s)", s.Topic)
	}
	fmt.Fprintf(&b, "  %dmin  %s", s.Duration, formatMoney(s.Price))
	return b.String()
}
