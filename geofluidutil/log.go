/*
Copyright © 2026 the geofluid authors.
This file is part of geofluid.

geofluid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

geofluid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with geofluid.  If not, see <http://www.gnu.org/licenses/>.
*/

package geofluidutil

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger returns a logger writing to w and, when logFile is not empty, to
// a size-rotated log file. level is parsed by logrus.ParseLevel. Close the
// returned io.Closer when the run is done.
func NewLogger(w io.Writer, logFile, level string) (*logrus.Logger, io.Closer, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("geofluid: LogLevel: %v", err)
	}
	log := logrus.New()
	log.Level = lvl
	log.Formatter = &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}
	if logFile == "" {
		log.Out = w
		return log, nopCloser{}, nil
	}
	lj := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    32, // MB
		MaxBackups: 3,
	}
	log.Out = io.MultiWriter(w, lj)
	return log, lj, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
