// Package cronexpr parses and evaluates cron expressions.
//
// Expressions use 5, 6, or 7 whitespace-separated fields:
//
//	5 fields: minutes hours day-of-month month day-of-week
//	6 fields: seconds first
//	7 fields: seconds first, year last
//
// Each field supports the extended grammar: "*" (all), a bare value,
// "a,b,c" lists, "lo-hi" ranges, "expr/n" steps, and the calendar forms
// "L" (last day of month), "nW" (nearest weekday to day n), "nL" (last
// weekday n of the month), and "n#m" (m-th weekday n of the month).
//
// Parsing validates every value against its unit's bounds eagerly and
// never defaults a malformed token. A parsed [Expression] is immutable;
// [Expression.Matches] answers whether an instant is due and
// [Expression.NextAfter] searches forward for the next firing time.
package cronexpr
