// /home/krylon/go/src/github.com/blicero/ealarmd/matcher/02_decision_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-21 19:09:12 krylon>

package matcher

import (
	"testing"

	"github.com/blicero/ealarmd/objects"
)

func TestFormatMessage(t *testing.T) {
	type testCase struct {
		template  string
		title     string
		body      string
		ruleTitle string
		expect    string
	}

	var cases = []testCase{
		{
			template:  "%t: %m (%s)",
			title:     "Fire",
			body:      "Building A",
			ruleTitle: "All",
			expect:    "Fire: Building A (All)",
		},
		{
			template: "100%%",
			expect:   "100%",
		},
		{
			template: "no placeholders at all",
			title:    "Fire",
			expect:   "no placeholders at all",
		},
		{
			// Unknown placeholders stay verbatim.
			template: "%t %x %q",
			title:    "Fire",
			expect:   "Fire %x %q",
		},
		{
			// A trailing percent sign stays verbatim.
			template: "alarm 100%",
			expect:   "alarm 100%",
		},
		{
			// Substituted values are not re-scanned.
			template: "%t",
			title:    "%m",
			body:     "should not appear",
			expect:   "%m",
		},
		{
			template:  "%s: %t %t",
			title:     "Fire",
			ruleTitle: "All",
			expect:    "All: Fire Fire",
		},
	}

	for idx, c := range cases {
		var res = FormatMessage(c.template, c.title, c.body, c.ruleTitle)

		if res != c.expect {
			t.Errorf("Case %d: template %q yields %q (expected %q)",
				idx+1,
				c.template,
				res,
				c.expect)
		}
	}
} // func TestFormatMessage(t *testing.T)

func TestDecide(t *testing.T) {
	var (
		msg = objects.NotificationMessage{
			ID:      23,
			RuleID:  1,
			Title:   "Fire",
			Message: "Building A",
		}
		rule = objects.NotificationRule{
			ID:           1,
			Title:        "All",
			LocalEnabled: true,
		}
	)

	var dec = Decide(&msg, &rule, "%t: %m (%s)")

	if !dec.ShouldNotify {
		t.Error("Decision for an enabled rule should be to notify")
	} else if dec.OutputMessage != "Fire: Building A (All)" {
		t.Errorf("Unexpected output message: %q", dec.OutputMessage)
	} else if dec.Message != &msg {
		t.Error("Decision does not reference the message it was made for")
	}

	rule.LocalEnabled = false

	if dec = Decide(&msg, &rule, "%t"); dec.ShouldNotify {
		t.Error("Decision for a disabled rule should be not to notify")
	}
} // func TestDecide(t *testing.T)
