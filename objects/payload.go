// /home/krylon/go/src/github.com/blicero/ealarmd/objects/payload.go
// -*- mode: go; coding: utf-8; -*-
// Created on 11. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-03-11 18:01:26 krylon>

package objects

//go:generate ffjson payload.go

// Payload is a decoded alarm as delivered by the transport. URL
// decoding and decryption are the transport's business; the engine
// only ever sees the decoded form.
type Payload struct {
	Title   string
	Message string
	Content map[string]string
}
