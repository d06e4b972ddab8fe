package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
)

// maxElements caps how many slice or array elements a tree node lists.
const maxElements = 64

// Inspect draws v as a read-only tree under label.
func Inspect(label string, v any) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr && !val.IsNil() {
		val = val.Elem()
	}
	renderValue(label, val)
}

func renderValue(name string, val reflect.Value) {
	if !val.IsValid() || !isContainer(val.Type()) {
		imgui.Text(fmt.Sprintf("%s: %s", name, FormatValue(val)))
		return
	}

	switch val.Kind() {
	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, f := range globalReflectionCache.GetFields(val.Type()) {
				fv := val.Field(f.Index)
				if f.IsPointer && !fv.IsNil() {
					fv = fv.Elem()
				}
				renderValue(f.Name, fv)
			}
			imgui.TreePop()
		}

	case reflect.Slice, reflect.Array:
		if val.Len() == 0 {
			imgui.Text(fmt.Sprintf("%s: []", name))
			return
		}
		if imgui.TreeNodeStr(fmt.Sprintf("%s [%d]", name, val.Len())) {
			n := min(val.Len(), maxElements)
			for i := range n {
				renderValue(fmt.Sprintf("[%d]", i), val.Index(i))
			}
			if val.Len() > n {
				imgui.Text(fmt.Sprintf("... %d more", val.Len()-n))
			}
			imgui.TreePop()
		}

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))
	}
}
