// /home/krylon/go/src/github.com/blicero/ealarmd/database/pool.go
// -*- mode: go; coding: utf-8; -*-
// Created on 14. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-23 21:18:46 krylon>

package database

import (
	"log"
	"sync"

	"github.com/blicero/ealarmd/common"
	"github.com/blicero/ealarmd/logdomain"
)

// Pool is a pool of database connections.
type Pool struct {
	lock sync.Mutex
	cond *sync.Cond
	log  *log.Logger
	pool []*Database
}

// NewPool opens a Pool of cnt connections to the database at the
// default path.
func NewPool(cnt int) (*Pool, error) {
	var (
		err  error
		pool = &Pool{
			pool: make([]*Database, 0, cnt),
		}
	)

	pool.cond = sync.NewCond(&pool.lock)

	if pool.log, err = common.GetLogger(logdomain.DBPool); err != nil {
		return nil, err
	}

	for i := 0; i < cnt; i++ {
		var db *Database

		if db, err = Open(common.DbPath); err != nil {
			pool.log.Printf("[ERROR] Cannot open database connection #%d: %s\n",
				i+1,
				err.Error())
			pool.Close() // nolint: errcheck
			return nil, err
		}

		pool.pool = append(pool.pool, db)
	}

	return pool, nil
} // func NewPool(cnt int) (*Pool, error)

// Get returns a connection from the Pool. If all connections are in
// use, it blocks until one is returned.
func (p *Pool) Get() *Database {
	p.lock.Lock()
	defer p.lock.Unlock()

	for len(p.pool) == 0 {
		p.cond.Wait()
	}

	var db = p.pool[len(p.pool)-1]
	p.pool = p.pool[:len(p.pool)-1]

	return db
} // func (p *Pool) Get() *Database

// GetNoWait returns a connection from the Pool, or nil if none is
// available right away.
func (p *Pool) GetNoWait() *Database {
	p.lock.Lock()
	defer p.lock.Unlock()

	if len(p.pool) == 0 {
		return nil
	}

	var db = p.pool[len(p.pool)-1]
	p.pool = p.pool[:len(p.pool)-1]

	return db
} // func (p *Pool) GetNoWait() *Database

// Put returns a connection to the Pool.
func (p *Pool) Put(db *Database) {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.pool = append(p.pool, db)
	p.cond.Signal()
} // func (p *Pool) Put(db *Database)

// Close closes all connections currently in the Pool.
func (p *Pool) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	var err error

	for _, db := range p.pool {
		if e := db.Close(); e != nil {
			p.log.Printf("[ERROR] Cannot close database connection: %s\n",
				e.Error())
			err = e
		}
	}

	p.pool = p.pool[:0]

	return err
} // func (p *Pool) Close() error
