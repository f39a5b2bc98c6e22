package lot

import (
	"fmt"
	"strings"
)

// ListFilter holds the optional criteria for listing lots. Zero values mean
// "no constraint"; pointer fields distinguish "absent" from a zero bound.
type ListFilter struct {
	States      []string
	SellerID    string
	MinAmount   *float64
	MaxAmount   *float64
	CreatedFrom string // YYYY-MM-DD, inclusive
	CreatedTo   string // YYYY-MM-DD, inclusive
	MaxBid      *float64
	Search      string
	OrderBy     string
	OrderDir    string
}

// orderColumns maps the externally visible sort keys to SQL expressions.
// Sorting never happens on a raw caller-supplied identifier.
var orderColumns = map[string]string{
	"created_at":         "l.created_at",
	"minimum_bet_amount": "l.minimum_bet_amount",
	"name":               "l.name",
	"state":              "l.state",
	"max_bid":            "max_bid",
}

const listSelect = `SELECT l.id, l.name, l.description, l.state, l.minimum_bet_amount,
       l.seller_id, l.created_at, l.active_till,
       u.name AS seller_name, u.surname AS seller_surname, u.email AS seller_email,
       COALESCE(MAX(b.amount), 0) AS max_bid
  FROM lot l
  JOIN "user" u ON l.seller_id = u.id
  LEFT JOIN bid b ON b.lot_id = l.id`

// buildListQuery assembles the parameterized list query. Every filter value is
// bound through a $n placeholder; only the fixed allow-list above ever reaches
// the ORDER BY clause.
func buildListQuery(f ListFilter) (string, []any) {
	var (
		conds    []string
		args     []any
		argIndex = 1
	)

	if len(f.States) > 0 {
		placeholders := make([]string, len(f.States))
		for i, st := range f.States {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, st)
			argIndex++
		}
		conds = append(conds, fmt.Sprintf("l.state IN (%s)", strings.Join(placeholders, ", ")))
	}

	if f.SellerID != "" {
		conds = append(conds, fmt.Sprintf("l.seller_id = $%d", argIndex))
		args = append(args, f.SellerID)
		argIndex++
	}

	if f.MinAmount != nil {
		conds = append(conds, fmt.Sprintf("l.minimum_bet_amount >= $%d", argIndex))
		args = append(args, *f.MinAmount)
		argIndex++
	}

	if f.MaxAmount != nil {
		conds = append(conds, fmt.Sprintf("l.minimum_bet_amount <= $%d", argIndex))
		args = append(args, *f.MaxAmount)
		argIndex++
	}

	if f.CreatedFrom != "" {
		conds = append(conds, fmt.Sprintf("l.created_at >= $%d::date", argIndex))
		args = append(args, f.CreatedFrom)
		argIndex++
	}

	if f.CreatedTo != "" {
		// inclusive date bound: anything created before the following midnight
		conds = append(conds, fmt.Sprintf("l.created_at < $%d::date + INTERVAL '1 day'", argIndex))
		args = append(args, f.CreatedTo)
		argIndex++
	}

	if f.Search != "" {
		conds = append(conds, fmt.Sprintf("(l.name ILIKE $%d OR l.description ILIKE $%d)", argIndex, argIndex+1))
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
		argIndex += 2
	}

	var sb strings.Builder
	sb.WriteString(listSelect)

	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	sb.WriteString(" GROUP BY l.id, u.id")

	// max_bid bounds the aggregate, so it belongs after GROUP BY
	if f.MaxBid != nil {
		sb.WriteString(fmt.Sprintf(" HAVING COALESCE(MAX(b.amount), 0) <= $%d", argIndex))
		args = append(args, *f.MaxBid)
		argIndex++
	}

	column, ok := orderColumns[f.OrderBy]
	if !ok {
		column = "l.created_at"
	}
	direction := strings.ToUpper(f.OrderDir)
	if direction != "ASC" && direction != "DESC" {
		direction = "DESC"
	}
	sb.WriteString(" ORDER BY " + column + " " + direction)

	return sb.String(), args
}
