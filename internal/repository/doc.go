// Package repository defines the data access interfaces for netimpact.
//
// This package provides the repository abstraction layer for persisting
// configuration snapshots and analysis runs. The actual implementation is
// in the sqlite subpackage.
//
// # Repository Interface
//
// The Repository interface covers snapshot storage (one configuration per
// device per collection), device enumeration, and the analysis run
// history.
//
// # SQLite Implementation
//
// The sqlite implementation uses WAL mode for concurrency and stores the
// configuration trees and analysis results as JSON documents alongside
// indexed metadata columns.
package repository
