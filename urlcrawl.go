// Package urlcrawl provides a bounded breadth-first web crawler.
// It starts from a seed URL, fetches pages, extracts their hyperlinks and
// keeps enqueueing unseen links until a target number of distinct URLs has
// been discovered or no more reachable URLs remain.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, regexp/, goquery/, sqlite/).
package urlcrawl
