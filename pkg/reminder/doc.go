// Package reminder decides when reminder notifications should fire. It never
// delivers anything: callers hand the planned Reminders to whatever
// notification service they use.
//
// PlanMedication expands a medication's free-text frequency ("every 6 hours",
// "twice daily", "once a day") into a bounded list of fire times between the
// later of start date and now, and the optional end date. PlanAppointment
// places a single reminder a fixed lead time before a vaccination appointment.
//
// Reminder IDs are ULIDs stamped with the fire time, so sorting IDs
// lexically also sorts reminders chronologically.
package reminder
