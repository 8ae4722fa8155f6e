// Package api implements the HTTP REST API for growthmate-server.
//
// New(store, opts) returns an http.Handler that serves:
//
//	GET    /api/v1/health                   service status, today's date, profile count
//	POST   /api/v1/growth/percentile        percentile + status for one measurement
//	POST   /api/v1/growth/bmi               BMI from weight and height
//	POST   /api/v1/growth/series            dated measurements placed on the curve
//	GET    /api/v1/vaccines                 recommended vaccine catalog
//	POST   /api/v1/vaccines/schedule        outstanding doses with due date and status
//	POST   /api/v1/reminders/medication     planned medication reminders
//	POST   /api/v1/reminders/appointment    one appointment reminder
//	GET    /api/v1/children                 one summary per live profile
//	PUT    /api/v1/children/{id}            create or replace a profile (201 on create)
//	GET    /api/v1/children/{id}            profile + live schedule + latest percentiles + hints
//	DELETE /api/v1/children/{id}            remove a profile
//
// All endpoints respond with Content-Type: application/json and return 405
// for unsupported methods. Request bodies are limited to 1 MiB and unknown
// fields are rejected with 400. Dates are YYYY-MM-DD (interpreted in the
// configured timezone) or RFC3339.
//
// JSON types are defined in types.go. No external HTTP framework is used.
package api
