// Package store keeps child profiles in memory. Each profile carries the
// child's birth date and gender, the vaccine doses already given and the
// recorded height/weight readings. Entries expire after a TTL; Run evicts
// them in the background.
package store
