package internal

import (
	"reflect"
	"strconv"
	"strings"
)

// FieldValueByTag finds the field of struct v whose tag has tagValue as
// its name. Fields of embedded structs are searched too.
func FieldValueByTag(v any, tag, tagValue string) (reflect.Value, bool) {
	return fieldByTag(reflect.ValueOf(v), tag, tagValue)
}

func fieldByTag(sval reflect.Value, tag, tagValue string) (reflect.Value, bool) {
	for sval.Kind() == reflect.Pointer {
		if sval.IsNil() {
			return reflect.Value{}, false
		}
		sval = sval.Elem()
	}
	if sval.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	stype := sval.Type()
	for i := 0; i < stype.NumField(); i++ {
		f := stype.Field(i)
		val, ok := f.Tag.Lookup(tag)
		if ok && tagName(val) == tagValue {
			return sval.Field(i), true
		}
		if f.Anonymous {
			if found, ok := fieldByTag(sval.Field(i), tag, tagValue); ok {
				return found, true
			}
		}
	}

	return reflect.Value{}, false
}

// tagName strips options such as ",omitempty".
func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// Indexable renders string and integer kinds as index values.
func Indexable(v reflect.Value) (string, bool) {
	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), true
	}
	return "", false
}
