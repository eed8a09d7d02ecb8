// /home/krylon/go/src/github.com/blicero/ealarmd/backend/backend.go
// -*- mode: go; coding: utf-8; -*-
// Created on 25. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-26 19:08:55 krylon>

// Package backend implements the daemon that accepts alarms over HTTP,
// runs them through the rule matcher and hands the admitted ones to
// the dispatcher.
package backend

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/blicero/ealarmd/common"
	"github.com/blicero/ealarmd/database"
	"github.com/blicero/ealarmd/dispatch"
	"github.com/blicero/ealarmd/logdomain"
	"github.com/blicero/ealarmd/objects"
	"github.com/blicero/ealarmd/prefs"
	"github.com/gorilla/mux"
	"github.com/grandcat/zeroconf"
)

const (
	queueDepth   = 16
	queueTimeout = time.Second * 2
)

// Daemon is the centerpiece of the backend, coordinating between the
// web server, the database and the dispatcher.
type Daemon struct {
	log        *log.Logger
	pool       *database.Pool
	pref       *prefs.Prefs
	disp       *dispatch.Dispatcher
	Queue      chan int64
	web        http.Server
	router     *mux.Router
	dnssd      *zeroconf.Server
	hostname   string
	listenAddr string
	lock       sync.RWMutex
	active     bool
	idLock     sync.Mutex
	idCnt      int64
}

// Summon summons a Daemon and returns it. No sacrifice or idolatry is
// required.
func Summon(addr string) (*Daemon, error) {
	var (
		err  error
		pres dispatch.Presenter
		sink dispatch.AudioSink
	)

	if pres, err = NewDBusPresenter(addr); err != nil {
		return nil, err
	} else if sink, err = NewExecSink(); err != nil {
		return nil, err
	}

	return summonWithPresenter(addr, pres, sink)
} // func Summon(addr string) (*Daemon, error)

func summonWithPresenter(addr string, pres dispatch.Presenter, sink dispatch.AudioSink) (*Daemon, error) {
	var (
		err error
		d   = &Daemon{
			listenAddr: addr,
			active:     true,
			Queue:      make(chan int64, queueDepth),
			router:     mux.NewRouter(),
		}
	)

	if d.log, err = common.GetLogger(logdomain.Backend); err != nil {
		fmt.Printf("ERROR initializing Logger: %s\n",
			err.Error())
		return nil, err
	} else if d.hostname, err = os.Hostname(); err != nil {
		d.log.Printf("[ERROR] Cannot determine hostname: %s\n",
			err.Error())
		return nil, err
	} else if d.pool, err = database.NewPool(4); err != nil {
		d.log.Printf("[ERROR] Cannot initialize database pool: %s\n",
			err.Error())
		return nil, err
	} else if d.pref, err = prefs.Open(); err != nil {
		d.log.Printf("[ERROR] Cannot load preferences: %s\n",
			err.Error())
		return nil, err
	} else if d.disp, err = dispatch.New(d.pool, d.pref, pres, sink); err != nil {
		d.log.Printf("[ERROR] Cannot create Dispatcher: %s\n",
			err.Error())
		return nil, err
	} else if err = d.bootstrapRules(); err != nil {
		return nil, err
	}

	d.web.Addr = addr
	d.web.ErrorLog = d.log
	d.web.Handler = d.router

	if err = d.initWebHandlers(); err != nil {
		d.log.Printf("[ERROR] Failed to initialize web server: %s\n",
			err.Error())
		return nil, err
	}

	if err = d.initDNSSd(); err != nil {
		// Not being discoverable is unfortunate, not fatal.
		d.log.Printf("[WARN] Cannot announce service via DNS-SD: %s\n",
			err.Error())
	}

	go d.notifyLoop()
	go d.serveHTTP()

	return d, nil
} // func summonWithPresenter(...) (*Daemon, error)

// bootstrapRules makes sure a fresh database has the catch-all rule,
// so alarms are not silently dropped before the user configured
// anything.
func (d *Daemon) bootstrapRules() error {
	var (
		err error
		cnt int64
		db  = d.pool.Get()
	)
	defer d.pool.Put(db)

	if cnt, err = db.RuleCount(); err != nil {
		d.log.Printf("[ERROR] Cannot count rules: %s\n",
			err.Error())
		return err
	} else if cnt > 0 {
		return nil
	}

	var r = objects.NotificationRule{
		Title:                 "All messages",
		LocalEnabled:          true,
		UseGlobalNotification: true,
		StartTime:             "00:00",
		StopTime:              "23:59",
		UUID:                  common.GetUUID(),
	}

	if err = db.RuleAdd(&r); err != nil {
		d.log.Printf("[ERROR] Cannot add default rule: %s\n",
			err.Error())
		return err
	}

	d.log.Printf("[INFO] Created default rule %d\n", r.ID)
	return nil
} // func (d *Daemon) bootstrapRules() error

// IsAlive returns true if the Daemon's active flag is set.
func (d *Daemon) IsAlive() bool {
	d.lock.RLock()
	var alive = d.active
	d.lock.RUnlock()

	return alive
} // func (d *Daemon) IsAlive() bool

// Banish clears the Daemon's active flag, telling components to shut down.
func (d *Daemon) Banish() error {
	var (
		err         error
		ctx, cancel = context.WithTimeout(context.Background(), time.Second*3)
	)
	defer cancel()

	if d.dnssd != nil {
		d.dnssd.Shutdown()
		d.dnssd = nil
	}

	if err = d.web.Shutdown(ctx); err != nil {
		d.log.Printf("[ERROR] Failed to shutdown web server: %s\n",
			err.Error())
	}

	if ctx.Err() != nil {
		err = ctx.Err()
		d.log.Printf("[ERROR] Failed to gracefully shut down web server: %s\n",
			ctx.Err().Error())
		d.web.Close() // nolint: errcheck
	}

	d.lock.Lock()
	d.active = false
	d.lock.Unlock()
	return err
} // func (d *Daemon) Banish() error

func (d *Daemon) notifyLoop() {
	defer d.log.Println("[TRACE] Quitting notifyLoop")

	var tick = time.NewTicker(queueTimeout)
	defer tick.Stop()

	for d.IsAlive() {
		select {
		case <-tick.C:
			continue
		case id := <-d.Queue:
			d.log.Printf("[DEBUG] Deliver Message %d\n",
				id)
			d.disp.HandleNotification(id)
		}
	}
} // func (d *Daemon) notifyLoop()

func (d *Daemon) getID() int64 {
	d.idLock.Lock()
	d.idCnt++
	var id = d.idCnt
	d.idLock.Unlock()
	return id
} // func (d *Daemon) getID() int64
