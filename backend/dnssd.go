// /home/krylon/go/src/github.com/blicero/ealarmd/backend/dnssd.go
// -*- mode: go; coding: utf-8; -*-
// Created on 27. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-27 21:25:18 krylon>

package backend

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/blicero/ealarmd/common"
	"github.com/grandcat/zeroconf"
)

const (
	srvService = "_ealarm._tcp"
	srvDomain  = "local."
)

var addrPat = regexp.MustCompile(`:(\d+)$`)

// extractPort pulls the TCP port out of a listen address like
// "localhost:6432".
func extractPort(addr string) (int, error) {
	var (
		err   error
		port  int64
		match []string
	)

	if match = addrPat.FindStringSubmatch(addr); match == nil {
		return 0, fmt.Errorf("Cannot extract HTTP port from server address %q",
			addr)
	} else if port, err = strconv.ParseInt(match[1], 10, 32); err != nil {
		return 0, err
	}

	return int(port), nil
} // func extractPort(addr string) (int, error)

// initDNSSd announces the daemon via DNS-SD, so clients on the local
// network can find it without configuration.
func (d *Daemon) initDNSSd() error {
	var (
		err  error
		port int
		srv  *zeroconf.Server
	)

	if port, err = extractPort(d.web.Addr); err != nil {
		d.log.Printf("[ERROR] Cannot determine HTTP port: %s\n",
			err.Error())
		return err
	}

	var instanceName = fmt.Sprintf("%s@%s",
		common.AppName,
		d.hostname)

	if srv, err = zeroconf.Register(instanceName, srvService, srvDomain, port, []string{"txtv=0"}, nil); err != nil {
		d.log.Printf("[ERROR] Cannot register service with DNS-SD: %s\n",
			err.Error())
		return err
	}

	d.dnssd = srv
	return nil
} // func (d *Daemon) initDNSSd() error
