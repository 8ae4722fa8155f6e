// Package vaccine holds the childhood vaccine catalog and computes which
// doses a child still needs.
//
// catalog.go is the static CDC-based catalog. It is package-level data that
// is never mutated; Catalog and Lookup hand out copies.
//
// schedule.go provides ComputeSchedule. For every dose not yet recorded it
// derives the due date (birth + recommended age, month-end clamped) and a
// status relative to a single "today" snapshot:
//
//	overdue   due date strictly before today
//	due       due date within the next month AND the child is at most one
//	          month younger than the dose's recommended age
//	upcoming  everything else
//
// Entries are stably sorted by status (overdue, due, upcoming) then due date.
// Scheduler wraps ComputeSchedule with an injectable clock.
package vaccine
