// Package store defines the persistence interfaces for the service's
// entities along with shared store errors and the transaction helper.
// Implementations live under internal/platform; services depend only on
// these interfaces.
package store
