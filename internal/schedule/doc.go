// Package schedule turns raw fight-schedule page text into structured
// fight-card records.
//
// The package handles the Boxing247 schedule layout: blocks anchored at
// date headers ("February 5:", "Fri, Mar 1"), a venue/broadcaster
// annotation per block, and one or more bout lines ("A versus B" or
// "A vs B 8:00 PM"). Cards get a deterministic SHA1-based ID from their
// date and raw text, enabling reliable tracking across runs.
package schedule
