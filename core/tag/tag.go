package tag

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

const defaultTagName = "default"

// ApplyDefaults sets default values for zero-valued struct fields based
// on `default:"..."` struct tags. The target must be a pointer to a
// struct. Nested structs and pointers to structs are processed
// recursively.
//
// Example:
//
//	type Config struct {
//	    Timeout time.Duration `default:"10s"`
//	    Level   string        `default:"info"`
//	}
//	cfg := &Config{}
//	err := tag.ApplyDefaults(cfg)
func ApplyDefaults(target any) error {
	valueOf := reflect.ValueOf(target)
	if valueOf.Kind() != reflect.Pointer {
		return ErrTargetMustBePointer
	}
	if valueOf.IsNil() {
		return ErrTargetIsNil
	}

	elem := valueOf.Elem()
	if elem.Kind() != reflect.Struct {
		return ErrUnsupportedType
	}

	return applyStruct(elem, "")
}

func applyStruct(value reflect.Value, path string) error {
	typ := value.Type()

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldValue := value.Field(i)

		if !fieldValue.CanSet() {
			continue
		}

		fieldPath := field.Name
		if path != "" {
			fieldPath = path + "." + field.Name
		}

		tagValue := field.Tag.Get(defaultTagName)
		if err := applyField(fieldValue, tagValue, fieldPath); err != nil {
			return err
		}
	}

	return nil
}

func applyField(value reflect.Value, tagValue, path string) error {
	switch value.Kind() {
	case reflect.Struct:
		return applyStruct(value, path)

	case reflect.Pointer:
		if value.Type().Elem().Kind() != reflect.Struct || value.IsNil() {
			return nil
		}
		return applyStruct(value.Elem(), path)
	}

	// Only zero-valued fields take defaults
	if tagValue == "" || !value.IsZero() {
		return nil
	}

	if err := parse(value, tagValue); err != nil {
		return newFieldError(path, value.Kind(), tagValue, err)
	}
	return nil
}

// parse converts a tag string into the field's type and assigns it.
func parse(value reflect.Value, str string) error {
	str = strings.TrimSpace(str)

	switch value.Kind() {
	case reflect.String:
		value.SetString(str)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if value.Type() == reflect.TypeFor[time.Duration]() {
			d, err := time.ParseDuration(str)
			if err != nil {
				return err
			}
			value.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return err
		}
		value.SetInt(n)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(str, 10, 64)
		if err != nil {
			return err
		}
		value.SetUint(n)
		return nil

	case reflect.Float32, reflect.Float64:
		bits := 64
		if value.Kind() == reflect.Float32 {
			bits = 32
		}
		f, err := strconv.ParseFloat(str, bits)
		if err != nil {
			return err
		}
		value.SetFloat(f)
		return nil

	case reflect.Bool:
		b, err := strconv.ParseBool(str)
		if err != nil {
			return err
		}
		value.SetBool(b)
		return nil

	case reflect.Slice:
		return parseSlice(value, str)

	default:
		return ErrUnsupportedType
	}
}

// parseSlice fills a slice of strings from a comma-separated tag value.
func parseSlice(value reflect.Value, str string) error {
	if value.Type().Elem().Kind() != reflect.String {
		return ErrUnsupportedType
	}

	if str == "" {
		value.Set(reflect.MakeSlice(value.Type(), 0, 0))
		return nil
	}

	parts := strings.Split(str, ",")
	slice := reflect.MakeSlice(value.Type(), len(parts), len(parts))
	for i, part := range parts {
		slice.Index(i).SetString(strings.TrimSpace(part))
	}

	value.Set(slice)
	return nil
}
