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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	file := filepath.Join(t.TempDir(), "solve.log")
	var buf bytes.Buffer
	log, c, err := NewLogger(&buf, file, "warning")
	require.NoError(t, err)
	require.Equal(t, logrus.WarnLevel, log.Level)

	log.Info("hidden")
	log.WithField("slice", 3).Warn("shown")
	require.NoError(t, c.Close())

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "slice=3")
	b, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, buf.String(), string(b))
}

func TestNewLoggerNoFile(t *testing.T) {
	var buf bytes.Buffer
	log, c, err := NewLogger(&buf, "", "debug")
	require.NoError(t, err)
	log.Debug("detail")
	require.NoError(t, c.Close())
	require.Contains(t, buf.String(), "detail")

	_, _, err = NewLogger(&buf, "", "loud")
	require.Error(t, err)
}
