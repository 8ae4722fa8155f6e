// Package metrics counts what the server computes and exposes the counts in
// the Prometheus text exposition format.
//
// Families:
//   - growthmate_http_requests_total{route,code}
//   - growthmate_percentile_calculations_total{type,status}
//   - growthmate_schedule_entries_total{status}
//   - growthmate_reminders_planned_total{kind}
//   - growthmate_profiles (gauge, sampled at scrape time)
package metrics
