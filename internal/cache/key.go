package cache

import (
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator joins the readable and hashed halves of a key.
const KeySeparator = "::"

// FuncKey derives a cache key from the identity of fn, ignoring any
// arguments it might be called with. The key is stable across processes
// built from the same source because it depends only on the symbol name.
//
// It panics if fn is not a function.
func FuncKey(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		panic("cache.FuncKey: argument is not a function")
	}

	name := runtime.FuncForPC(v.Pointer()).Name()
	// Method values are wrapped in a closure whose symbol ends in "-fm".
	name = strings.TrimSuffix(name, "-fm")

	short := name
	if i := strings.LastIndex(short, "/"); i >= 0 {
		short = short[i+1:]
	}
	return short + KeySeparator + strconv.FormatUint(xxhash.Sum64String(name), 16)
}
