// Package profile loads a child's profile from a YAML file for growthctl.
//
// Example:
//
//	child:
//	  id: mia
//	  name: Mia Lopez
//	  birth_date: 2025-10-17
//	  gender: female
//	completed:
//	  - vaccine: hepb
//	    dose: 1
//	    date: 2025-10-17
//	records:
//	  - type: measurement
//	    title: 12 month checkup
//	    date: 2026-10-17
//	    height: 74.0
//	    weight: 9.1
//	medications:
//	  - name: Amoxicillin
//	    dosage: 5ml
//	    frequency: every 8 hours
//	    start_date: 2026-10-15
//	    end_date: 2026-10-22
//	    active: true
//	    reminders: true
//
// Dates are YYYY-MM-DD or RFC3339. Height and weight on any record become
// growth observations.
package profile
