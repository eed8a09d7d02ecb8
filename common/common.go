// /home/krylon/go/src/github.com/blicero/ealarmd/common/common.go
// -*- mode: go; coding: utf-8; -*-
// Created on 04. 03. 2023 by Benjamin Walkenhorst
// (c) 2023 Benjamin Walkenhorst
// Time-stamp: <2023-04-18 19:42:17 krylon>

// Package common provides constants and functions used throughout
// the application.
package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/blicero/ealarmd/logdomain"
	"github.com/blicero/krylib"
	"github.com/hashicorp/logutils"
	uuid "github.com/odeke-em/go-uuid"
)

// Debug, if true, causes the application to emit additional log messages.
// AppName and Version identify the application.
// TimestampFormat is the format for use with time.Time.Format used
// throughout the application for display purposes.
// TimestampFormatMessage is the format alarm messages are stamped with,
// it is always applied to UTC times.
// TimeOfDayFormat is the format of a rule's start and stop time.
const (
	Debug                       = true
	AppName                     = "eAlarmD"
	Version                     = "0.3.1"
	DefaultPort                 = 6432
	TimestampFormat             = "2006-01-02 15:04:05"
	TimestampFormatSubSecond    = "2006-01-02 15:04:05.0000 MST"
	TimestampFormatMessage      = "2006-01-02T15:04:05.000000"
	TimestampFormatMessageShort = "2006-01-02T15:04:05"
	TimeOfDayFormat             = "15:04"
)

// LogLevels are the valid log levels, in ascending order of severity.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

// MinLogLevel is the threshold for log messages to get printed.
var MinLogLevel logutils.LogLevel = "TRACE"

// BaseDir is the directory where the application stores its files,
// the database, the log, and the preferences.
var BaseDir = filepath.Join(
	os.Getenv("HOME"),
	fmt.Sprintf(".%s.d", strings.ToLower(AppName)))

// LogPath is the path of the log file.
var LogPath = filepath.Join(BaseDir, strings.ToLower(AppName)+".log")

// DbPath is the path of the database.
var DbPath = filepath.Join(BaseDir, strings.ToLower(AppName)+".db")

// PrefsPath is the path of the global notification preferences.
var PrefsPath = filepath.Join(BaseDir, "prefs.yaml")

// SetBaseDir sets the BaseDir and the paths of the various files
// derived from it, and makes sure the directory exists.
func SetBaseDir(path string) error {
	fmt.Printf("Setting BaseDir to %s\n", path)

	BaseDir = path
	LogPath = filepath.Join(BaseDir, strings.ToLower(AppName)+".log")
	DbPath = filepath.Join(BaseDir, strings.ToLower(AppName)+".db")
	PrefsPath = filepath.Join(BaseDir, "prefs.yaml")

	if err := InitApp(); err != nil {
		fmt.Printf("Error initializing application environment: %s\n",
			err.Error())
		return err
	}

	return nil
} // func SetBaseDir(path string) error

// InitApp creates the BaseDir if it does not exist already.
func InitApp() error {
	var (
		err    error
		exists bool
	)

	if exists, err = krylib.Fexists(BaseDir); err != nil {
		return fmt.Errorf("Error checking if BaseDir %s exists: %s",
			BaseDir,
			err.Error())
	} else if !exists {
		if err = os.MkdirAll(BaseDir, 0700); err != nil {
			return fmt.Errorf("Error creating BaseDir %s: %s",
				BaseDir,
				err.Error())
		}
	}

	return nil
} // func InitApp() error

// GetLogger returns a Logger for the given log source, writing both to
// stderr and the log file.
func GetLogger(dom logdomain.ID) (*log.Logger, error) {
	var (
		err     error
		logfile *os.File
		name    = fmt.Sprintf("%s.%s ",
			AppName,
			dom)
	)

	if err = InitApp(); err != nil {
		return nil, fmt.Errorf("Error initializing application environment: %s",
			err.Error())
	}

	if logfile, err = os.OpenFile(LogPath, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644); err != nil {
		return nil, fmt.Errorf("Error opening log file %s: %s",
			LogPath,
			err.Error())
	}

	var writer = io.MultiWriter(os.Stderr, logfile)
	var filter = &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: MinLogLevel,
		Writer:   writer,
	}

	return log.New(filter, name, log.Ldate|log.Ltime|log.Lshortfile), nil
} // func GetLogger(dom logdomain.ID) (*log.Logger, error)

// GetUUID returns a random UUID as a string.
func GetUUID() string {
	return uuid.NewRandom().String()
} // func GetUUID() string
