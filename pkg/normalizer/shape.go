package normalizer

import (
	"strings"
	"time"

	"github.com/spf13/cast"

	"taxidispatch/pkg/apperr"
	"taxidispatch/pkg/models"
)

// relation finds an embedded relation under the first key holding one. A
// relation is an object or a one-element array of objects; null, {} and []
// mean absent. Scalars under a relation key are foreign keys, not relations.
func relation(raw models.Raw, keys ...string) (models.Raw, bool, error) {
	for _, k := range keys {
		var items []interface{}
		switch v := raw[k].(type) {
		case map[string]interface{}:
			return present(v)
		case []interface{}:
			items = v
		case []map[string]interface{}:
			for _, m := range v {
				items = append(items, m)
			}
		default:
			continue
		}

		switch {
		case len(items) > 1:
			return nil, false, apperr.Malformed("relation %q holds %d entries, expected at most one", k, len(items))
		case len(items) == 0 || items[0] == nil:
			return nil, false, nil
		}
		m, ok := items[0].(map[string]interface{})
		if !ok {
			return nil, false, apperr.Malformed("relation %q holds a %T, expected an object", k, items[0])
		}
		return present(m)
	}
	return nil, false, nil
}

func present(m map[string]interface{}) (models.Raw, bool, error) {
	if len(m) == 0 {
		return nil, false, nil
	}
	return m, true, nil
}

// reader pulls typed values out of a Raw, remembering the first failure so
// callers can read every field and check once.
type reader struct {
	raw    models.Raw
	entity string
	err    error
}

func newReader(raw models.Raw, entity string) *reader {
	return &reader{raw: raw, entity: entity}
}

// pick returns the first non-null scalar under keys.
func (r *reader) pick(keys ...string) (interface{}, bool) {
	for _, k := range keys {
		v, ok := r.raw[k]
		if !ok || v == nil {
			continue
		}
		switch v.(type) {
		case map[string]interface{}, []interface{}, []map[string]interface{}:
			continue
		}
		return v, true
	}
	return nil, false
}

func (r *reader) fail(format string, args ...interface{}) {
	if r.err == nil {
		r.err = apperr.Malformed(r.entity+": "+format, args...)
	}
}

func (r *reader) str(keys ...string) string {
	v, ok := r.pick(keys...)
	if !ok {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		r.fail("%s is not text", keys[0])
		return ""
	}
	return strings.TrimSpace(s)
}

func (r *reader) requiredString(field string, keys ...string) string {
	s := r.str(keys...)
	if s == "" {
		r.fail("%s is missing", field)
	}
	return s
}

func (r *reader) float(field string, keys ...string) *float64 {
	v, ok := r.pick(keys...)
	if !ok {
		return nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		r.fail("%s %v is not a number", field, v)
		return nil
	}
	return &f
}

func (r *reader) requiredFloat(field string, keys ...string) float64 {
	f := r.float(field, keys...)
	if f == nil {
		r.fail("%s is missing", field)
		return 0
	}
	return *f
}

func (r *reader) integer(field string, keys ...string) *int {
	v, ok := r.pick(keys...)
	if !ok {
		return nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || f != float64(int(f)) {
		r.fail("%s %v is not a whole number", field, v)
		return nil
	}
	n := int(f)
	return &n
}

func (r *reader) optionalID(field string, keys ...string) *int64 {
	n := r.integer(field, keys...)
	if n == nil {
		return nil
	}
	id := int64(*n)
	return &id
}

func (r *reader) requiredID(field string, keys ...string) int64 {
	id := r.optionalID(field, keys...)
	if id == nil {
		r.fail("%s is missing", field)
		return 0
	}
	if *id <= 0 {
		r.fail("%s %d is not a valid identifier", field, *id)
	}
	return *id
}

func (r *reader) boolean(field string, keys ...string) bool {
	v, ok := r.pick(keys...)
	if !ok {
		return false
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		r.fail("%s %v is not a flag", field, v)
	}
	return b
}

func (r *reader) optionalDate(field string, keys ...string) *time.Time {
	v, ok := r.pick(keys...)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case time.Time:
		return &t
	case *time.Time:
		return t
	}
	s, err := cast.ToStringE(v)
	if err != nil || strings.TrimSpace(s) == "" {
		if err != nil {
			r.fail("%s %v is not a date", field, v)
		}
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		r.fail("%s %q is not a date", field, s)
		return nil
	}
	return &t
}

func (r *reader) date(field string, keys ...string) time.Time {
	if t := r.optionalDate(field, keys...); t != nil {
		return *t
	}
	return time.Time{}
}
