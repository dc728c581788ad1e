// Package temporal normalizes MySQL temporal column values (DATE, TIME, DATETIME, TIMESTAMP)
// decoded from binlog into configurably formatted strings.
//
// Decoded values and their conversion:
//
//	| mysql                         | Value                            | default output      |
//	| ----------------------------- | -------------------------------- | ------------------- |
//	| date 2021-01-28               | LocalDate, EpochDay(18655)       | 2021-01-28          |
//	| time 17:29:04                 | Duration{Seconds: 62944}         | 17:29:04            |
//	| datetime 2021-01-28 17:29:04  | LocalDateTime                    | 2021-01-28T17:29:04 |
//	| timestamp 2021-01-28 17:29:04 | ZonedDateTime 2021-01-28T09:29Z  | wall clock in zone  |
//
// DATETIME carries no timezone so it's never shifted. TIMESTAMP is stored as UTC by MySQL,
// it's converted to the same instant in the configured zone ("format.timestamp.zone",
// default process local zone) before formatting.
//
// Patterns use java.time letters, see package pattern.
package temporal
