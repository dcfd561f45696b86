// Package textutil provides small text helpers shared by the reporting and
// output layers, chiefly filename-safe token conversion for chart and table
// artifacts derived from free-form metadata values.
package textutil
