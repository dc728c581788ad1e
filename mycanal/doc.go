// Package mycanal glues temporal values normalization to MySQL CDC (Change Data Capture).
//
// Temporal columns are decoded differently depending on where they come from:
//
//	| mysql     | incrdump (go-mysql binlog)  | fulldump (go-sql-driver/mysql) |
//	| --------- | --------------------------- | ------------------------------ |
//	| DATE      | string "2021-01-28"         | time.Time                      |
//	| TIME      | string "17:29:04"           | []byte "17:29:04"              |
//	| DATETIME  | time.Time or string         | time.Time (wall clock in UTC)  |
//	| TIMESTAMP | time.Time or string         | time.Time (UTC instant)        |
//
// Package incrdump and fulldump map these into temporal.Value and rewrite temporal columns
// of rows into formatted strings, so both paths output the same text for the same value.
//
// Prerequisites for incrdump:
//   - binlog enabled with the following:
//     - `--binlog-format=ROW`: binlog output row changes instead of statments
//     - `--binlog-row-metadata=FULL`: extra optional meta for tables such as column names
//
// ref:
//   - https://mysqlhighavailability.com/more-metadata-is-written-into-binary-log/
//   - https://github.com/go-mysql-org/go-mysql/pull/482
//
// Zero dates ("0000-00-00 ...") are not converted and passed through as is.
package mycanal
