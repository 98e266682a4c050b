// ABOUTME: Ordered JSON object model backed by wk8/go-ordered-map
// ABOUTME: Keeps manifest keys in file order through load, edit and write

package jsonfile

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a JSON object that remembers key order. Values are nil, bool,
// json.Number, string, []any or *Object.
type Object = orderedmap.OrderedMap[string, any]

// NewObject returns an empty Object.
func NewObject() *Object {
	return orderedmap.New[string, any]()
}

// ObjectOf builds an Object from alternating key/value arguments. It panics on
// a non-string key; it is meant for literals in code and tests.
func ObjectOf(kv ...any) *Object {
	o := NewObject()
	for i := 0; i+1 < len(kv); i += 2 {
		o.Set(kv[i].(string), kv[i+1])
	}
	return o
}

// Keys returns the keys of o in order.
func Keys(o *Object) []string {
	if o == nil {
		return nil
	}
	keys := make([]string, 0, o.Len())
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// CopyObject returns a new Object with the same pairs. Values are shared.
func CopyObject(o *Object) *Object {
	out := NewObject()
	if o == nil {
		return out
	}
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	return out
}

// GetObject returns o[key] when it is an object.
func GetObject(o *Object, key string) (*Object, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	obj, ok := v.(*Object)
	return obj, ok && obj != nil
}

// GetString returns o[key] when it is a string.
func GetString(o *Object, key string) (string, bool) {
	if o == nil {
		return "", false
	}
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
