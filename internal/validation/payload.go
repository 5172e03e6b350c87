// Package validation runs ordered, fail-fast rule lists over decoded JSON bodies.
package validation

// Payload is a decoded JSON object. Numbers are float64, as produced by encoding/json.
type Payload map[string]interface{}

// FromBody unwraps the optional {"data": {...}} envelope clients may send.
func FromBody(body map[string]interface{}) Payload {
	if inner, ok := body["data"].(map[string]interface{}); ok {
		return Payload(inner)
	}
	if body == nil {
		return Payload{}
	}
	return Payload(body)
}

// Has reports whether the key was sent at all, null included.
func (p Payload) Has(field string) bool {
	_, ok := p[field]
	return ok
}

// Present reports whether the key was sent with a non-null value.
func (p Payload) Present(field string) bool {
	v, ok := p[field]
	return ok && v != nil
}

// Blank reports whether the value is missing, null or the empty string.
func (p Payload) Blank(field string) bool {
	switch v := p[field].(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}

// Truthy reports whether the value is neither missing, null, "", 0 nor false.
func (p Payload) Truthy(field string) bool {
	switch v := p[field].(type) {
	case nil:
		return false
	case string:
		return v != ""
	case float64:
		return v != 0
	case bool:
		return v
	default:
		return true
	}
}

func (p Payload) Raw(field string) interface{} {
	return p[field]
}

func (p Payload) String(field string) (string, bool) {
	v, ok := p[field].(string)
	return v, ok
}

func (p Payload) Number(field string) (float64, bool) {
	v, ok := p[field].(float64)
	return v, ok
}

func (p Payload) Bool(field string) (bool, bool) {
	v, ok := p[field].(bool)
	return v, ok
}

// Objects returns the field as a list of objects. ok is false if the field is not an
// array; elements that are not objects come back as empty payloads.
func (p Payload) Objects(field string) ([]Payload, bool) {
	list, ok := p[field].([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]Payload, 0, len(list))
	for _, item := range list {
		obj, _ := item.(map[string]interface{})
		out = append(out, Payload(obj))
	}
	return out, true
}

// CoerceBinary maps the numbers 1 and 0 onto booleans and returns everything else unchanged.
func CoerceBinary(v interface{}) interface{} {
	if n, ok := v.(float64); ok {
		switch n {
		case 1:
			return true
		case 0:
			return false
		}
	}
	return v
}
