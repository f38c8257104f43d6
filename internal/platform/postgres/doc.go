// Package postgres implements the store interfaces using a PostgreSQL
// database accessed through database/sql over the pgx stdlib driver.
// Driver errors are translated to store sentinels by MapError so callers
// never match on PostgreSQL error codes directly.
package postgres
