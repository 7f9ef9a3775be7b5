/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package core

import (
	"sort"
	"strconv"
	"strings"
)

// Interval is a closed range of symbols.
type Interval struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

func (i Interval) String() string {
	if i.From == i.To {
		return symbolName(i.From)
	}
	return symbolName(i.From) + ".." + symbolName(i.To)
}

// IntervalSet is an ordered set of disjoint, non-adjacent Intervals.
//
// A set is built once (via NewIntervalSet or Add) while the network is
// loaded and then only read.
type IntervalSet struct {
	intervals []Interval
}

// NewIntervalSet makes a set containing the given intervals.
func NewIntervalSet(is ...Interval) *IntervalSet {
	s := &IntervalSet{}
	for _, i := range is {
		s.Add(i.From, i.To)
	}
	return s
}

// Add inserts [from,to], merging with any overlapping or adjacent
// intervals.
func (s *IntervalSet) Add(from, to int) {
	if to < from {
		return
	}
	acc := make([]Interval, 0, len(s.intervals)+1)
	merged := Interval{From: from, To: to}
	for _, i := range s.intervals {
		if i.To+1 < merged.From || merged.To+1 < i.From {
			acc = append(acc, i)
			continue
		}
		if i.From < merged.From {
			merged.From = i.From
		}
		if merged.To < i.To {
			merged.To = i.To
		}
	}
	acc = append(acc, merged)
	sort.Slice(acc, func(a, b int) bool { return acc[a].From < acc[b].From })
	s.intervals = acc
}

// Contains reports whether the symbol is in the set.
func (s *IntervalSet) Contains(symbol int) bool {
	if s == nil {
		return false
	}
	n := sort.Search(len(s.intervals), func(i int) bool {
		return symbol <= s.intervals[i].To
	})
	return n < len(s.intervals) && s.intervals[n].From <= symbol
}

// Intervals returns a copy of the set's intervals in order.
func (s *IntervalSet) Intervals() []Interval {
	if s == nil {
		return nil
	}
	acc := make([]Interval, len(s.intervals))
	copy(acc, s.intervals)
	return acc
}

func (s *IntervalSet) String() string {
	if s == nil || len(s.intervals) == 0 {
		return "{}"
	}
	parts := make([]string, len(s.intervals))
	for i, in := range s.intervals {
		parts[i] = in.String()
	}
	if len(parts) == 1 && s.intervals[0].From == s.intervals[0].To {
		return parts[0]
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func symbolName(symbol int) string {
	if symbol == TokenEOF {
		return "<EOF>"
	}
	return strconv.Itoa(symbol)
}
