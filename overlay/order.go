package overlay

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// keepOrder returns after with the mapping keys which also occur in
// before in before's order.
func keepOrder(before, after any) any {
	switch a := after.(type) {
	case yaml.MapSlice:
		b, _ := before.(yaml.MapSlice)
		idx := make(map[string]int, len(a))
		for i, item := range a {
			idx[fmt.Sprint(item.Key)] = i
		}
		res := make(yaml.MapSlice, 0, len(a))
		used := make([]bool, len(a))
		for _, item := range b {
			i, ok := idx[fmt.Sprint(item.Key)]
			if !ok || used[i] {
				continue
			}
			used[i] = true
			res = append(res, yaml.MapItem{Key: a[i].Key, Value: keepOrder(item.Value, a[i].Value)})
		}
		for i, item := range a {
			if !used[i] {
				res = append(res, item)
			}
		}
		return res
	case []any:
		b, _ := before.([]any)
		res := make([]any, len(a))
		for i := range a {
			var bv any
			if i < len(b) {
				bv = b[i]
			}
			res[i] = keepOrder(bv, a[i])
		}
		return res
	}
	return after
}
