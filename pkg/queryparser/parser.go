package queryparser

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Parse fills the `query` tagged fields of target (a pointer to struct) from
// values. Slices accept repeated parameters and comma separated lists.
func Parse(values url.Values, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to struct")
	}

	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		if !field.CanSet() {
			continue
		}

		tag := fieldType.Tag.Get("query")
		if tag == "" {
			continue
		}

		raw, ok := values[tag]
		if !ok {
			continue
		}

		if err := setField(field, raw); err != nil {
			return fmt.Errorf("query parameter %s: %w", tag, err)
		}
	}

	return nil
}

func setField(field reflect.Value, raw []string) error {
	if field.Kind() == reflect.Slice {
		items := splitValues(raw)
		if len(items) == 0 {
			return nil
		}
		slice := reflect.MakeSlice(field.Type(), 0, len(items))
		for _, item := range items {
			elem := reflect.New(field.Type().Elem()).Elem()
			if err := setScalar(elem, item); err != nil {
				return err
			}
			slice = reflect.Append(slice, elem)
		}
		field.Set(slice)
		return nil
	}

	value := ""
	if len(raw) > 0 {
		value = strings.TrimSpace(raw[0])
	}
	if value == "" {
		return nil
	}

	return setScalar(field, value)
}

func setScalar(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer value: %s", value)
		}
		field.SetInt(v)
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value: %s", value)
		}
		field.SetBool(v)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

func splitValues(raw []string) []string {
	var out []string
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
