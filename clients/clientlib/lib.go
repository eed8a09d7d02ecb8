// /home/krylon/go/src/github.com/blicero/ealarmd/clients/clientlib/lib.go
// -*- mode: go; coding: utf-8; -*-
// Created on 28. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-28 19:34:46 krylon>

// Package clientlib provides the basic framework for building clients
// that submit alarms to the daemon.
package clientlib

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/blicero/ealarmd/common"
	"github.com/blicero/ealarmd/logdomain"
	"github.com/blicero/ealarmd/objects"
	"github.com/cenkalti/backoff"
	"github.com/pquerna/ffjson/ffjson"
)

const (
	submitPath  = "/alarm/submit"
	maxInterval = time.Second * 30
	maxElapsed  = time.Minute * 5
)

// Client implements the fundamental communication with the daemon.
type Client struct {
	Server *url.URL
	Client http.Client
	log    *log.Logger
}

// NewClient creates a new Client.
func NewClient(srv string) (*Client, error) {
	var (
		err error
		c   = &Client{
			Client: http.Client{
				Timeout: time.Second * 10,
			},
		}
	)

	if c.log, err = common.GetLogger(logdomain.Client); err != nil {
		fmt.Fprintf(
			os.Stderr,
			"Cannot create Logger: %s\n",
			err.Error())
		return nil, err
	} else if c.Server, err = url.Parse(srv); err != nil {
		c.log.Printf("[ERROR] Cannot parse URL %q: %s\n",
			srv,
			err.Error())
		return nil, err
	}

	c.Server.Scheme = "http"
	c.Server.Path = submitPath

	return c, nil
} // func NewClient(srv string) (*Client, error)

// GetLogger returns the Client's logger.
func (c *Client) GetLogger() *log.Logger {
	return c.log
} // func (c *Client) GetLogger() *log.Logger

// SubmitAlarm submits an alarm payload to the daemon, retrying with
// exponential backoff if the daemon cannot be reached.
func (c *Client) SubmitAlarm(p *objects.Payload) error {
	var policy = backoff.NewExponentialBackOff()
	policy.MaxInterval = maxInterval
	policy.MaxElapsedTime = maxElapsed

	return backoff.Retry(func() error { return c.submitOnce(p) }, policy)
} // func (c *Client) SubmitAlarm(p *objects.Payload) error

func (c *Client) submitOnce(p *objects.Payload) error {
	var (
		err    error
		msg    string
		rcvBuf bytes.Buffer
		hres   *http.Response
		ores   objects.Response
		values = make(url.Values)
	)

	values.Set("title", p.Title)
	values.Set("message", p.Message)

	for key, val := range p.Content {
		if key == "title" || key == "message" {
			continue
		}
		values.Set(key, val)
	}

	if hres, err = c.Client.PostForm(c.Server.String(), values); err != nil {
		c.log.Printf("[ERROR] Failed to POST alarm to %s: %s\n",
			c.Server,
			err.Error())
		return err
	}

	defer hres.Body.Close() // nolint: errcheck

	if hres.StatusCode != http.StatusOK {
		msg = fmt.Sprintf("Unexpected status from %s: %s",
			c.Server,
			hres.Status)
		c.log.Printf("[ERROR] %s\n", msg)
		return errors.New(msg)
	} else if _, err = io.Copy(&rcvBuf, hres.Body); err != nil {
		c.log.Printf("[ERROR] Failed to read Response body from %s: %s\n",
			c.Server,
			err.Error())
		return err
	} else if err = ffjson.Unmarshal(rcvBuf.Bytes(), &ores); err != nil {
		c.log.Printf("[ERROR] Cannot de-serialize Response from %s: %s\n",
			c.Server,
			err.Error())
		return err
	} else if !ores.Status {
		// The daemon rejected the payload, trying again will not
		// change its mind.
		err = fmt.Errorf("Request to %s failed: %s",
			c.Server,
			ores.Message)
		c.log.Printf("[ERROR] %s\n",
			err.Error())
		return backoff.Permanent(err)
	}

	c.log.Printf("[DEBUG] Request to %s was successful: %s\n",
		c.Server,
		ores.Message)

	return nil
} // func (c *Client) submitOnce(p *objects.Payload) error
