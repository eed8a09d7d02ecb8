// /home/krylon/go/src/github.com/blicero/ealarmd/matcher/01_matcher_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-21 19:02:33 krylon>

package matcher

import (
	"testing"
	"time"

	"github.com/blicero/ealarmd/objects"
)

var noon = time.Date(2023, 3, 15, 12, 0, 0, 0, time.Local)

func mkRule(id int64, title, search, start, stop string) objects.NotificationRule {
	return objects.NotificationRule{
		ID:                    id,
		Title:                 title,
		LocalEnabled:          true,
		UseGlobalNotification: true,
		StartTime:             start,
		StopTime:              stop,
		SearchText:            search,
	}
} // func mkRule(id int64, title, search, start, stop string) objects.NotificationRule

func TestAdmitMalformed(t *testing.T) {
	var rules = []objects.NotificationRule{
		mkRule(1, "All", "", "00:00", "23:59"),
	}

	type testCase struct {
		p *objects.Payload
	}

	var cases = []testCase{
		{p: nil},
		{p: &objects.Payload{}},
		{p: &objects.Payload{Title: "Fire"}},
		{p: &objects.Payload{Message: "123 Main St"}},
	}

	for idx, c := range cases {
		var _, err = Admit(c.p, rules, noon)

		if err != ErrMalformedPayload {
			t.Errorf("Case %d: expected ErrMalformedPayload, got %v",
				idx+1,
				err)
		}
	}
} // func TestAdmitMalformed(t *testing.T)

func TestAdmitNoMatch(t *testing.T) {
	var rules = []objects.NotificationRule{
		mkRule(1, "Floods only", "Flood.*", "00:00", "23:59"),
		mkRule(2, "Night shift", "", "22:00", "06:00"),
	}

	var p = &objects.Payload{
		Title:   "Fire",
		Message: "123 Main St",
	}

	var matches, err = Admit(p, rules, noon)

	if err != ErrNoMatchingRule {
		t.Errorf("Expected ErrNoMatchingRule, got %v", err)
	} else if matches != nil {
		t.Errorf("Expected no matches, got %d", len(matches))
	}
} // func TestAdmitNoMatch(t *testing.T)

func TestAdmitSingle(t *testing.T) {
	var rules = []objects.NotificationRule{
		mkRule(1, "All", "", "00:00", "23:59"),
	}

	var p = &objects.Payload{
		Title:   "Fire",
		Message: "123 Main St",
		Content: map[string]string{"awf_lat": "51.5", "awf_lon": "9.9"},
	}

	var matches, err = Admit(p, rules, noon)

	if err != nil {
		t.Fatalf("Admit failed: %s", err.Error())
	} else if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}

	var m = matches[0]

	if m.Rule.ID != 1 {
		t.Errorf("Message was admitted by rule %d (expected 1)", m.Rule.ID)
	} else if m.Message.RuleID != 1 {
		t.Errorf("Message links to rule %d (expected 1)", m.Message.RuleID)
	} else if m.Message.Title != p.Title || m.Message.Message != p.Message {
		t.Errorf("Message does not carry the payload: %q / %q",
			m.Message.Title,
			m.Message.Message)
	} else if m.Message.Seen {
		t.Error("A freshly admitted message must not be marked as seen")
	} else if m.Message.Content["awf_lat"] != "51.5" {
		t.Error("Message does not carry the payload's content map")
	}

	if _, err = m.Message.Time(); err != nil {
		t.Errorf("Cannot parse timestamp of admitted message (%q): %s",
			m.Message.Timestamp,
			err.Error())
	}
} // func TestAdmitSingle(t *testing.T)

// Several matching rules produce one message per rule, all sharing a
// single timestamp. A broken rule in between must not get in the way.
func TestAdmitMultiple(t *testing.T) {
	var rules = []objects.NotificationRule{
		mkRule(1, "All", "", "00:00", "23:59"),
		mkRule(2, "Broken", "", "2500", "23:59"),
		mkRule(3, "Fires", "Fire", "08:00", "20:00"),
	}
	rules[2].Priority = 5

	var p = &objects.Payload{
		Title:   "Fire",
		Message: "123 Main St",
	}

	var matches, err = Admit(p, rules, noon)

	if err != nil {
		t.Fatalf("Admit failed: %s", err.Error())
	} else if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}

	if matches[0].Rule.ID != 1 || matches[1].Rule.ID != 3 {
		t.Errorf("Unexpected rules matched: %d, %d",
			matches[0].Rule.ID,
			matches[1].Rule.ID)
	} else if matches[0].Message.Timestamp != matches[1].Message.Timestamp {
		t.Errorf("Sibling messages do not share one timestamp: %q vs %q",
			matches[0].Message.Timestamp,
			matches[1].Message.Timestamp)
	} else if matches[0].Message.UUID == matches[1].Message.UUID {
		t.Error("Sibling messages must not share a UUID")
	}
} // func TestAdmitMultiple(t *testing.T)
