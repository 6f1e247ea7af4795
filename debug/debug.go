package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Extract  bool
	Resolve  bool
	Registry bool
	Emit     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Extract = boolEnv("JSC_DEBUG_EXTRACT")
	d.Resolve = boolEnv("JSC_DEBUG_RESOLVE")
	d.Registry = boolEnv("JSC_DEBUG_REGISTRY")
	d.Emit = boolEnv("JSC_DEBUG_EMIT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Extract() bool {
	return d.Extract
}
func Resolve() bool {
	return d.Resolve
}
func Registry() bool {
	return d.Registry
}
func Emit() bool {
	return d.Emit
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}

func Logf(msg string, args ...any) {
	for i := range args {
		switch a := args[i].(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case fmt.Stringer:
			args[i] = a.String()
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
