package tracker

import (
	"encoding/json"
	"reflect"
)

// Event records a user event. The payload is optional; when present it must
// be a map or struct and is sent JSON encoded.
func (c *Client) Event(name any, payload ...any) {
	if !c.ready("event") {
		return
	}
	n, ok := name.(string)
	if !ok {
		c.logger.Warn().Msgf("event wrong first param %v. Should be a string.", name)
		return
	}
	var p any
	if len(payload) > 0 {
		p = payload[0]
	}
	if !isHash(p) {
		c.logger.Warn().Msgf("event wrong second param %v. Should be a hash.", p)
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		c.logger.Warn().Err(err).Msgf("event payload for %q could not be encoded", n)
		return
	}
	c.bundle.Messages.UserEvent(n, string(data))
}

// isHash reports whether v encodes as a JSON object or null.
func isHash(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return true
	default:
		return false
	}
}
