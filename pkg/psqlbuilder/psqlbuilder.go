// Package psqlbuilder wraps github.com/Masterminds/squirrel with the
// $N placeholder style Postgres expects, so repositories never have to
// remember to call PlaceholderFormat themselves.
package psqlbuilder

import "github.com/Masterminds/squirrel"

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select starts a SELECT query over the given columns.
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert starts an INSERT query into the given table.
func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

// Update starts an UPDATE query against the given table.
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete starts a DELETE query against the given table.
func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}
