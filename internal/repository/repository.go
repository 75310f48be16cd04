// Package repository handles all interactions with the database.
//
// It builds SQL with squirrel and scans rows with sqlx, abstracting SQL
// logic away from the service layer. Every method runs on the executor it
// is given, normally the request's database.UnitOfWork, and never opens
// or commits transactions itself.
package repository
