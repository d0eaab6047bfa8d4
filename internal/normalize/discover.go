// Package normalize converts provider payloads into canonical games.
//
// Payloads are decoded into generic JSON trees and every logical field is read through an
// ordered list of candidate paths; the first one that resolves wins.
package normalize

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/coerce"
	"github.com/preston-bernstein/scoreboard-service/internal/domain/games"
	"github.com/preston-bernstein/scoreboard-service/internal/timeutil"
)

// Meta is stamped onto every game a normalizer produces.
type Meta struct {
	League    games.League
	Provider  string
	FetchedAt time.Time
}

func (m Meta) source() games.Source {
	src := games.Source{Provider: m.Provider}
	if !m.FetchedAt.IsZero() {
		src.FetchedAtUTC = m.FetchedAt.UTC().Format(time.RFC3339)
	}
	return src
}

// Event is one discovered upstream record with its stable identifier.
type Event struct {
	ID  string
	Raw map[string]any
}

// Paths that hold a flat list of events (or of date buckets).
var eventListPaths = []string{
	"content.schedule.events",
	"scoreboard.events",
	"events",
	"games",
	"data",
	"schedule.events",
}

// Containers whose elements (or date-keyed values) are buckets of games.
var bucketContainerPaths = []string{"gameWeek", "dates", "gamesByDate"}

var bucketItemKeys = []string{"games", "events"}

var idPaths = []string{"id", "gamePk", "gameId", "idEvent", "eventId", "unitCode"}

var dateKey = regexp.MustCompile(`^\d{4}-?\d{2}-?\d{2}$`)

// DiscoverEvents finds every event list in payload, flattens date buckets and dedupes the
// result by EventID.
func DiscoverEvents(payload any) []Event {
	var nodes []any
	if arr := coerce.Array(payload); arr != nil {
		nodes = append(nodes, flattenBuckets(arr)...)
	}
	if obj := coerce.Object(payload); obj != nil {
		for _, p := range eventListPaths {
			nodes = append(nodes, expand(coerce.Path(obj, p))...)
		}
		for _, p := range bucketContainerPaths {
			nodes = append(nodes, expandBuckets(obj[p])...)
		}
		nodes = append(nodes, dateBuckets(obj)...)
	}
	return Dedupe(nodes)
}

// Dedupe keys nodes by EventID, falling back to the node's position when it has none.
// A repeated id replaces the earlier node in place.
func Dedupe(nodes []any) []Event {
	index := make(map[string]int, len(nodes))
	out := make([]Event, 0, len(nodes))
	for i, n := range nodes {
		obj := coerce.Object(n)
		if obj == nil {
			continue
		}
		id := EventID(obj)
		if id == "" {
			id = fmt.Sprintf("idx-%d", i)
		}
		if at, ok := index[id]; ok {
			out[at] = Event{ID: id, Raw: obj}
			continue
		}
		index[id] = len(out)
		out = append(out, Event{ID: id, Raw: obj})
	}
	return out
}

// EventID returns the first identifier-like field of node.
func EventID(node any) string {
	return coerce.FirstText(node, idPaths...)
}

func expand(v any) []any {
	switch n := v.(type) {
	case []any:
		return flattenBuckets(n)
	case map[string]any:
		return dateBuckets(n)
	}
	return nil
}

// expandBuckets keeps only bucket contents; container elements without a games list
// (day summaries, navigation stubs) are not events.
func expandBuckets(v any) []any {
	switch n := v.(type) {
	case []any:
		var out []any
		for _, item := range n {
			if inner, ok := bucketItems(item); ok {
				out = append(out, flattenBuckets(inner)...)
			}
		}
		return out
	case map[string]any:
		return dateBuckets(n)
	}
	return nil
}

// flattenBuckets replaces bucket elements ({date, games: [...]}) with their games.
func flattenBuckets(arr []any) []any {
	out := make([]any, 0, len(arr))
	for _, item := range arr {
		if inner, ok := bucketItems(item); ok {
			out = append(out, flattenBuckets(inner)...)
			continue
		}
		out = append(out, item)
	}
	return out
}

func bucketItems(item any) ([]any, bool) {
	obj := coerce.Object(item)
	if obj == nil || EventID(obj) != "" {
		return nil, false
	}
	for _, key := range bucketItemKeys {
		if arr, ok := obj[key].([]any); ok {
			return arr, true
		}
	}
	return nil, false
}

// dateBuckets collects values stored under date-shaped keys, in key order.
func dateBuckets(obj map[string]any) []any {
	keys := make([]string, 0)
	for k := range obj {
		if dateKey.MatchString(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var out []any
	for _, k := range keys {
		switch v := obj[k].(type) {
		case []any:
			out = append(out, flattenBuckets(v)...)
		case map[string]any:
			if inner, ok := bucketItems(v); ok {
				out = append(out, flattenBuckets(inner)...)
			}
		}
	}
	return out
}

// startTime normalizes the first parseable timestamp among paths to RFC 3339 UTC.
// Unknown or unparseable values yield "".
func startTime(node any, paths ...string) string {
	for _, p := range paths {
		if ts := utcTimestamp(coerce.Text(coerce.Path(node, p))); ts != "" {
			return ts
		}
	}
	return ""
}

func utcTimestamp(raw string) string {
	t, ok := timeutil.ParseTimestamp(raw)
	if !ok {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func flag(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true" || b == "1"
	}
	return false
}
