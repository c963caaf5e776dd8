// Package pg provides the PostgreSQL connection pool, schema migrations,
// and health probing used by the billing service.
//
// Connections are pgx pools; migrations are plain SQL files applied with
// goose through the pgx stdlib bridge at startup.
package pg
