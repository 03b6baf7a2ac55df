// Copyright 2026 Pathvouch Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package util collects small shared helpers.
package util

import (
	"regexp"
	"strconv"
	"time"

	"github.com/pathvouch/pathvouch/pkg/private/serrors"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
	year = 365 * day
)

var durationRegexp = regexp.MustCompile(`^(\d+)(ns|us|µs|ms|s|m|h|d|w|y)$`)

// ParseDuration parses a duration string. On top of the units understood by
// time.ParseDuration it supports d (days), w (weeks) and y (years).
func ParseDuration(s string) (time.Duration, error) {
	match := durationRegexp.FindStringSubmatch(s)
	if match == nil {
		return 0, serrors.New("invalid duration", "input", s)
	}
	count, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, serrors.Wrap("invalid duration", err, "input", s)
	}
	var unit time.Duration
	switch match[2] {
	case "ns":
		unit = time.Nanosecond
	case "us", "µs":
		unit = time.Microsecond
	case "ms":
		unit = time.Millisecond
	case "s":
		unit = time.Second
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = day
	case "w":
		unit = week
	case "y":
		unit = year
	}
	return time.Duration(count) * unit, nil
}

// FmtDuration formats a duration using the largest unit that divides it
// evenly.
func FmtDuration(d time.Duration) string {
	units := []struct {
		unit   time.Duration
		suffix string
	}{
		{year, "y"}, {week, "w"}, {day, "d"},
		{time.Hour, "h"}, {time.Minute, "m"}, {time.Second, "s"},
		{time.Millisecond, "ms"}, {time.Microsecond, "us"}, {time.Nanosecond, "ns"},
	}
	for _, u := range units {
		if d%u.unit == 0 {
			return strconv.FormatInt(int64(d/u.unit), 10) + u.suffix
		}
	}
	return d.String()
}

// DurWrap wraps a duration so it can be used in text based configuration
// formats and as a flag value.
type DurWrap struct {
	time.Duration
}

func (d *DurWrap) UnmarshalText(text []byte) error {
	return d.Set(string(text))
}

func (d *DurWrap) Set(text string) error {
	var err error
	d.Duration, err = ParseDuration(text)
	return err
}

func (d DurWrap) MarshalText() ([]byte, error) {
	return []byte(FmtDuration(d.Duration)), nil
}

func (d DurWrap) String() string {
	return FmtDuration(d.Duration)
}
