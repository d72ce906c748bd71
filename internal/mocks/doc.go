// Package mocks provides hand-rolled test doubles for the store and
// service interfaces. Each mock exposes function fields for customizable
// behavior, with an in-memory default implementation behind them.
package mocks
