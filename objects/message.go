// /home/krylon/go/src/github.com/blicero/ealarmd/objects/message.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-20 21:16:05 krylon>

package objects

import (
	"time"

	"github.com/blicero/ealarmd/common"
)

//go:generate ffjson message.go

// NotificationMessage is one admitted alarm, tied to the rule that
// admitted it. Its Timestamp is always stored in UTC; conversion to
// local time happens at the display boundary only.
type NotificationMessage struct {
	ID        int64
	RuleID    int64
	Title     string
	Message   string
	Timestamp string
	Content   map[string]string
	Seen      bool
	UUID      string
}

// Time parses the message's timestamp. Both the sub-second and the
// plain form are accepted.
func (m *NotificationMessage) Time() (time.Time, error) {
	var (
		err error
		t   time.Time
	)

	if t, err = time.ParseInLocation(common.TimestampFormatMessage, m.Timestamp, time.UTC); err == nil {
		return t, nil
	} else if t, err = time.ParseInLocation(common.TimestampFormatMessageShort, m.Timestamp, time.UTC); err == nil {
		return t, nil
	}

	return t, err
} // func (m *NotificationMessage) Time() (time.Time, error)

// DisplayTimestamp returns the message's timestamp converted to local
// time, formatted for display. If the stored stamp cannot be parsed,
// it is returned as-is.
func (m *NotificationMessage) DisplayTimestamp() string {
	var (
		err error
		t   time.Time
	)

	if t, err = m.Time(); err != nil {
		return m.Timestamp
	}

	return t.Local().Format(common.TimestampFormat)
} // func (m *NotificationMessage) DisplayTimestamp() string

// Payload returns the message's Title and body.
func (m *NotificationMessage) Payload() (string, string) {
	return m.Title, m.Message
} // func (m *NotificationMessage) Payload() (string, string)
