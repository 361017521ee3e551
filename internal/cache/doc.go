// Package cache keeps recently synthesized audio in memory so that speaking
// the same text again does not run the speech engine a second time.
package cache
