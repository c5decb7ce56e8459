package urlbuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Option is one tagged option pair in an ordered option list. Name is
// compared case-sensitively against the recognized tags in Build.
type Option struct {
	Name  string
	Value interface{}
}

// Options is an ordered sequence of Option pairs. Order is significant:
// Build renders recognized options as query parameters in input order,
// and returns unrecognized options as a residual Options slice in the
// same relative order.
type Options []Option

// Location is a 4-tuple of floats, used by the "locations" option.
type Location [4]float64

// Build renders base plus the recognized entries of opts into a query
// string URL, returning the URL and the options Build did not
// recognize, unchanged. session.Session discards this residual: its
// transport.Opener takes no per-request options, so residual options
// never reach the transport.
//
// Recognized options:
//
//	count      int        -> count=N
//	delimited  int         -> delimited=length
//	follow     []int       -> follow=u1,u2,...
//	track      []string    -> track=s1,s2,...
//	locations  []Location  -> locations=a,b,c,d,a,b,c,d,...
//
// No percent-encoding is applied; see package doc.
func Build(base string, opts Options) (string, Options) {
	var query strings.Builder
	var residual Options
	sep := '?'

	appendParam := func(name, value string) {
		query.WriteRune(sep)
		query.WriteString(name)
		query.WriteByte('=')
		query.WriteString(value)
		sep = '&'
	}

	for _, opt := range opts {
		switch opt.Name {
		case "count":
			n, ok := asInt(opt.Value)
			if !ok {
				residual = append(residual, opt)
				continue
			}
			appendParam("count", strconv.Itoa(n))
		case "delimited":
			n, ok := asInt(opt.Value)
			if !ok {
				residual = append(residual, opt)
				continue
			}
			appendParam("delimited", strconv.Itoa(n))
		case "follow":
			ids, ok := opt.Value.([]int)
			if !ok {
				residual = append(residual, opt)
				continue
			}
			parts := make([]string, len(ids))
			for i, id := range ids {
				parts[i] = strconv.Itoa(id)
			}
			appendParam("follow", strings.Join(parts, ","))
		case "track":
			terms, ok := opt.Value.([]string)
			if !ok {
				residual = append(residual, opt)
				continue
			}
			appendParam("track", strings.Join(terms, ","))
		case "locations":
			locs, ok := opt.Value.([]Location)
			if !ok {
				residual = append(residual, opt)
				continue
			}
			parts := make([]string, 0, len(locs)*4)
			for _, loc := range locs {
				for _, coord := range loc {
					parts = append(parts, fmt.Sprintf("%.5g", coord))
				}
			}
			appendParam("locations", strings.Join(parts, ","))
		default:
			residual = append(residual, opt)
		}
	}

	return base + query.String(), residual
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}
