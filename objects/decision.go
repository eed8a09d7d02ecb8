// /home/krylon/go/src/github.com/blicero/ealarmd/objects/decision.go
// -*- mode: go; coding: utf-8; -*-
// Created on 12. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-03-12 16:40:51 krylon>

package objects

// NotifyDecision is the outcome of deciding whether the user should be
// told about one message. It is computed per dispatch cycle and never
// persisted.
type NotifyDecision struct {
	ShouldNotify  bool
	Message       *NotificationMessage
	OutputMessage string
}
