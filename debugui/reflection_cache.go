package debugui

import (
	"fmt"
	"reflect"
	"sync"
	"time"
)

// FieldInfo describes one exported struct field shown by the inspector.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	// IsContainer marks structs, slices, arrays and maps, which are drawn as
	// tree nodes instead of a single line.
	IsContainer bool
}

// ReflectionCache memoizes the exported fields of struct types.
type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

// GetFields returns the exported fields of t, or nil if t is not a struct.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}

			fieldType := field.Type
			isPointer := fieldType.Kind() == reflect.Ptr
			if isPointer {
				fieldType = fieldType.Elem()
			}

			fields = append(fields, FieldInfo{
				Name:        field.Name,
				Type:        fieldType,
				Index:       i,
				IsPointer:   isPointer,
				IsContainer: isContainer(fieldType),
			})
		}
	}

	rc.fieldCache[t] = fields
	return fields
}

var globalReflectionCache = NewReflectionCache()

var durationType = reflect.TypeOf(time.Duration(0))

func isContainer(t reflect.Type) bool {
	if t == durationType || t.Implements(stringerType) {
		return false
	}
	switch t.Kind() {
	case reflect.Struct, reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

// FormatValue renders a leaf value on one line. Stringers use their String
// method; containers are summarized by length.
func FormatValue(v reflect.Value) string {
	if !v.IsValid() {
		return "<invalid>"
	}
	if v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "nil"
		}
		return FormatValue(v.Elem())
	}
	if v.CanInterface() {
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String()
		}
	}

	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.3f", v.Float())
	case reflect.String:
		return fmt.Sprintf("%q", v.String())
	case reflect.Slice, reflect.Map:
		if v.IsNil() {
			return "nil"
		}
		return fmt.Sprintf("%s (len %d)", v.Type(), v.Len())
	case reflect.Array:
		return fmt.Sprintf("%s (len %d)", v.Type(), v.Len())
	case reflect.Struct:
		return v.Type().String()
	}
	return fmt.Sprintf("%v", v.Interface())
}
