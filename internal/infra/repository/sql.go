package repository

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
)

const (
	tableBooks         = "books"
	tableRentalHeaders = "rental_headers"
	tableRentalDetails = "rental_details"
	tableRentalEvents  = "rental_events"
)

var dialect = goqu.Dialect("postgres")

type sqlBuilder interface {
	ToSQL() (string, []interface{}, error)
}

func openStatusValues() []string {
	return []string{"pending", "active"}
}
