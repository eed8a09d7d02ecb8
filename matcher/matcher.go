// /home/krylon/go/src/github.com/blicero/ealarmd/matcher/matcher.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-21 18:44:09 krylon>

// Package matcher implements the admission logic: deciding which of
// the configured rules accept an incoming alarm payload.
//
// Admission is a pure function over the payload, the rule snapshot and
// the reference time; persisting the admitted messages is the caller's
// business. The rule slice must not be mutated for the duration of one
// call.
package matcher

import (
	"errors"
	"time"

	"github.com/blicero/ealarmd/common"
	"github.com/blicero/ealarmd/objects"
)

// ErrMalformedPayload indicates the transport delivered a payload that
// is missing its mandatory fields.
var ErrMalformedPayload = errors.New("payload is missing title or message")

// ErrNoMatchingRule indicates a well-formed payload that no rule
// admits. Upstream treats this as a normal drop, not a fault.
var ErrNoMatchingRule = errors.New("no rule matches the payload")

// Match pairs a matching rule with the message created for it.
type Match struct {
	Rule    *objects.NotificationRule
	Message *objects.NotificationMessage
}

// Admit determines which rules admit the given payload at the given
// instant and returns one fresh message per matching rule. All sibling
// messages share a single timestamp. Rules whose time window or search
// pattern cannot be parsed are skipped silently.
func Admit(p *objects.Payload, rules []objects.NotificationRule, now time.Time) ([]Match, error) {
	if p == nil || p.Title == "" || p.Message == "" {
		return nil, ErrMalformedPayload
	}

	var (
		stamp   = now.In(time.UTC).Format(common.TimestampFormatMessage)
		matches = make([]Match, 0, len(rules))
	)

	for idx := range rules {
		var r = &rules[idx]

		if !r.Matches(p, now) {
			continue
		}

		var m = &objects.NotificationMessage{
			RuleID:    r.ID,
			Title:     p.Title,
			Message:   p.Message,
			Timestamp: stamp,
			Content:   p.Content,
			UUID:      common.GetUUID(),
		}

		matches = append(matches, Match{Rule: r, Message: m})
	}

	if len(matches) == 0 {
		return nil, ErrNoMatchingRule
	}

	return matches, nil
} // func Admit(p *objects.Payload, rules []objects.NotificationRule, now time.Time) ([]Match, error)
