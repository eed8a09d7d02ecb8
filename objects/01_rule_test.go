// /home/krylon/go/src/github.com/blicero/ealarmd/objects/01_rule_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-21 18:20:37 krylon>

package objects

import (
	"testing"
	"time"
)

func TestInWindow(t *testing.T) {
	type testCase struct {
		start, stop string
		ref         time.Time
		expect      bool
	}

	// A Wednesday afternoon, nothing special about it.
	var afternoon = time.Date(2023, 3, 15, 14, 30, 0, 0, time.Local)

	var cases = []testCase{
		// Plain windows, start < stop
		{start: "08:00", stop: "20:00", ref: afternoon, expect: true},
		{start: "15:00", stop: "20:00", ref: afternoon, expect: false},
		{start: "08:00", stop: "12:00", ref: afternoon, expect: false},
		// Boundary instants are inclusive
		{start: "14:30", stop: "20:00", ref: afternoon, expect: true},
		{start: "08:00", stop: "14:30", ref: afternoon, expect: true},
		// Full day
		{start: "00:00", stop: "23:59", ref: afternoon, expect: true},
		// Midnight-crossing window, active side before midnight
		{
			start:  "22:00",
			stop:   "06:00",
			ref:    time.Date(2023, 3, 15, 23, 15, 0, 0, time.Local),
			expect: true,
		},
		// Midnight-crossing window, active side after midnight
		{
			start:  "22:00",
			stop:   "06:00",
			ref:    time.Date(2023, 3, 15, 4, 45, 0, 0, time.Local),
			expect: true,
		},
		// Midnight-crossing window, outside
		{start: "22:00", stop: "06:00", ref: afternoon, expect: false},
		// Midnight-crossing boundaries
		{
			start:  "22:00",
			stop:   "06:00",
			ref:    time.Date(2023, 3, 15, 22, 0, 0, 0, time.Local),
			expect: true,
		},
		{
			start:  "22:00",
			stop:   "06:00",
			ref:    time.Date(2023, 3, 15, 6, 0, 0, 0, time.Local),
			expect: true,
		},
		// start == stop is a degenerate window: only that instant
		{start: "14:30", stop: "14:30", ref: afternoon, expect: true},
		{start: "15:00", stop: "15:00", ref: afternoon, expect: false},
		// Unparsable times fail closed
		{start: "25:00", stop: "20:00", ref: afternoon, expect: false},
		{start: "banana", stop: "20:00", ref: afternoon, expect: false},
		{start: "08:00", stop: "", ref: afternoon, expect: false},
	}

	for idx, c := range cases {
		var r = NotificationRule{
			Title:     "Test",
			StartTime: c.start,
			StopTime:  c.stop,
		}

		if res := r.InWindow(c.ref); res != c.expect {
			t.Errorf(`Case %d: Window %s - %s at %s: expected %t, got %t`,
				idx+1,
				c.start,
				c.stop,
				c.ref.Format("15:04"),
				c.expect,
				res)
		}
	}
} // func TestInWindow(t *testing.T)

func TestMatchesText(t *testing.T) {
	type testCase struct {
		pattern     string
		title, body string
		expect      bool
	}

	var cases = []testCase{
		{pattern: "", title: "Fire", body: "123 Main St", expect: true},
		{pattern: "Fire", title: "Fire", body: "123 Main St", expect: true},
		{pattern: "Fire", title: "Brandmeldung", body: "Fire", expect: true},
		{pattern: "Fire", title: "Firetruck", body: "123 Main St", expect: false},
		{pattern: "Fire.*", title: "Firetruck", body: "123 Main St", expect: true},
		{pattern: ".*Main.*", title: "Fire", body: "123 Main St", expect: true},
		{pattern: "Flood", title: "Fire", body: "123 Main St", expect: false},
		// A pattern that does not compile never matches.
		{pattern: "Fire(", title: "Fire(", body: "Fire(", expect: false},
	}

	for idx, c := range cases {
		var r = NotificationRule{
			Title:      "Test",
			SearchText: c.pattern,
		}

		if res := r.MatchesText(c.title, c.body); res != c.expect {
			t.Errorf("Case %d: pattern %q on (%q, %q): expected %t, got %t",
				idx+1,
				c.pattern,
				c.title,
				c.body,
				c.expect,
				res)
		}
	}
} // func TestMatchesText(t *testing.T)
