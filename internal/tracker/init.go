package tracker

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/danmuck/asayer/internal/transport"
)

// Options is the structured form of the init argument.
// SiteID accepts anything number-like: integers, finite floats, or strings
// with a leading decimal integer.
type Options struct {
	SiteID any           `json:"siteID"`
	Fetch  *FetchOptions `json:"fetch,omitempty"`
}

type FetchOptions struct {
	SessionIDHeader string `json:"sessionIDHeader"`
}

// Init configures the client once. It accepts Options, *Options, or any
// string-keyed map or struct with the same keys; anything else is rejected
// with a log line. A second successful call is a no-op.
func (c *Client) Init(opts any) {
	siteRaw, fetchRaw, ok := decodeOptions(opts)
	if !ok {
		c.logger.Error().Msg("missing or wrong options for init")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.initialized {
		c.logger.Warn().Msg("package was already initialized")
		return
	}
	siteID, ok := parseSiteID(siteRaw)
	if !ok {
		c.logger.Error().Msg("missing or wrong siteID")
		return
	}
	header := transport.DefaultSessionIDHeader
	if h, ok := c.sessionIDHeader(fetchRaw); ok {
		header = h
	}

	c.initialized = true
	c.siteID = siteID
	c.header = header
	c.bundle.Session.Configure(transport.Settings{SiteID: siteID, SessionIDHeader: header})
	if c.supported {
		c.bundle.Session.Init()
	}
	c.logger.Debug().Int("site_id", siteID).Bool("supported", c.supported).Msg("initialized")
}

func decodeOptions(opts any) (siteID any, fetch any, ok bool) {
	switch o := opts.(type) {
	case Options:
		return o.SiteID, o.Fetch, true
	case *Options:
		if o == nil {
			return nil, nil, false
		}
		return o.SiteID, o.Fetch, true
	}
	if isNilMap(opts) {
		return nil, nil, false
	}
	entries, ok := objectEntries(opts)
	if !ok {
		return nil, nil, false
	}
	return entries["siteID"], entries["fetch"], true
}

func isNilMap(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Map && rv.IsNil()
}

// sessionIDHeader extracts the header override from the fetch option.
func (c *Client) sessionIDHeader(raw any) (string, bool) {
	var value any
	switch f := raw.(type) {
	case nil:
		return "", false
	case *FetchOptions:
		if f == nil || f.SessionIDHeader == "" {
			return "", false
		}
		value = f.SessionIDHeader
	case FetchOptions:
		if f.SessionIDHeader == "" {
			return "", false
		}
		value = f.SessionIDHeader
	default:
		entries, ok := objectEntries(raw)
		if !ok {
			c.logger.Warn().Msgf("init wrong fetch option %v. Should be an object.", raw)
			return "", false
		}
		v, present := entries["sessionIDHeader"]
		if !present {
			return "", false
		}
		value = v
	}
	h, ok := value.(string)
	h = strings.TrimSpace(h)
	if !ok || h == "" {
		c.logger.Warn().Msgf("init wrong fetch.sessionIDHeader %v. Should be a non-empty string.", value)
		return "", false
	}
	return h, true
}

// parseSiteID reads an integer the way a lenient base-10 parser does: numbers
// are truncated, strings contribute their leading integer.
func parseSiteID(v any) (int, bool) {
	switch x := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		return parseIntPrefix(x)
	case json.Number:
		return parseIntPrefix(x.String())
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case reflect.Float32, reflect.Float64:
		f := math.Trunc(rv.Float())
		if math.IsNaN(f) || math.IsInf(f, 0) || f < math.MinInt || f >= math.MaxInt {
			return 0, false
		}
		return int(f), true
	case reflect.String:
		return parseIntPrefix(rv.String())
	default:
		return 0, false
	}
}

func parseIntPrefix(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
