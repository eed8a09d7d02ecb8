// /home/krylon/go/src/github.com/blicero/ealarmd/clients/sendalarm/main.go
// -*- mode: go; coding: utf-8; -*-
// Created on 28. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-28 20:05:31 krylon>

// sendalarm is a small command line client that submits one alarm to
// the daemon. Additional key=value arguments end up in the message's
// content map.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/blicero/ealarmd/clients/clientlib"
	"github.com/blicero/ealarmd/common"
	"github.com/blicero/ealarmd/objects"
)

func main() {
	var (
		err                 error
		client              *clientlib.Client
		srv, title, message string
	)

	flag.StringVar(
		&srv,
		"server",
		fmt.Sprintf("localhost:%d", common.DefaultPort),
		"Address of the daemon")

	flag.StringVar(&title, "title", "", "Title of the alarm")
	flag.StringVar(&message, "message", "", "Body of the alarm")

	flag.Parse()

	if title == "" || message == "" {
		fmt.Fprintln(os.Stderr, "Both -title and -message are required")
		os.Exit(1)
	}

	var payload = objects.Payload{
		Title:   title,
		Message: message,
		Content: make(map[string]string),
	}

	for _, arg := range flag.Args() {
		var key, val, found = strings.Cut(arg, "=")
		if !found {
			fmt.Fprintf(os.Stderr,
				"Ignoring argument %q, expected key=value\n",
				arg)
			continue
		}
		payload.Content[key] = val
	}

	if client, err = clientlib.NewClient(srv); err != nil {
		fmt.Fprintf(os.Stderr,
			"Cannot create client: %s\n",
			err.Error())
		os.Exit(1)
	} else if err = client.SubmitAlarm(&payload); err != nil {
		fmt.Fprintf(os.Stderr,
			"Cannot submit alarm: %s\n",
			err.Error())
		os.Exit(1)
	}

	fmt.Println("OK")
}
