// /home/krylon/go/src/github.com/blicero/ealarmd/backend/02_dnssd_test.go
// -*- mode: go; coding: utf-8; -*-
// Created on 29. 04. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-29 18:26:40 krylon>

package backend

import "testing"

func TestExtractPort(t *testing.T) {
	type testCase struct {
		addr        string
		port        int
		expectError bool
	}

	var cases = []testCase{
		{addr: "localhost:6432", port: 6432},
		{addr: "127.0.0.1:80", port: 80},
		// Ports above 32767 are perfectly legal.
		{addr: "[::1]:54321", port: 54321},
		{addr: "0.0.0.0:65535", port: 65535},
		{addr: "localhost", expectError: true},
		{addr: "", expectError: true},
	}

	for _, c := range cases {
		var port, err = extractPort(c.addr)

		if c.expectError {
			if err == nil {
				t.Errorf("Extracting a port from %q should have failed, got %d",
					c.addr,
					port)
			}
		} else if err != nil {
			t.Errorf("Cannot extract port from %q: %s",
				c.addr,
				err.Error())
		} else if port != c.port {
			t.Errorf("Wrong port for %q: %d (expected %d)",
				c.addr,
				port,
				c.port)
		}
	}
} // func TestExtractPort(t *testing.T)
