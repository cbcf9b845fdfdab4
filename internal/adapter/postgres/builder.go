package postgres

import sq "github.com/Masterminds/squirrel"

// Builder returns a squirrel statement builder configured for PostgreSQL
// ($1-style) placeholders.
func Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}
