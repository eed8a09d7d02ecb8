// /home/krylon/go/src/github.com/blicero/ealarmd/matcher/decision.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-21 18:47:55 krylon>

package matcher

import (
	"strings"

	"github.com/blicero/ealarmd/objects"
)

// Decide determines whether the user should be notified about the
// given message and renders the output text from the template.
func Decide(msg *objects.NotificationMessage, rule *objects.NotificationRule, template string) objects.NotifyDecision {
	return objects.NotifyDecision{
		ShouldNotify:  rule.LocalEnabled,
		Message:       msg,
		OutputMessage: FormatMessage(template, msg.Title, msg.Message, rule.Title),
	}
} // func Decide(msg *objects.NotificationMessage, rule *objects.NotificationRule, template string) objects.NotifyDecision

// FormatMessage substitutes the placeholders %t (message title), %m
// (message body), %s (rule title) and %% (literal percent sign) in a
// single left-to-right pass. Substituted values are never re-scanned,
// unknown placeholders are left verbatim.
func FormatMessage(template, title, body, ruleTitle string) string {
	var buf strings.Builder

	for i := 0; i < len(template); i++ {
		if template[i] != '%' || i == len(template)-1 {
			buf.WriteByte(template[i])
			continue
		}

		i++

		switch template[i] {
		case 't':
			buf.WriteString(title)
		case 'm':
			buf.WriteString(body)
		case 's':
			buf.WriteString(ruleTitle)
		case '%':
			buf.WriteByte('%')
		default:
			buf.WriteByte('%')
			buf.WriteByte(template[i])
		}
	}

	return buf.String()
} // func FormatMessage(template, title, body, ruleTitle string) string
