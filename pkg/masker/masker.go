package masker

import (
	"reflect"

	"go.uber.org/zap"
)

// LogConfigs logs configuration structs, including nested ones.
// Fields tagged with masked:"true" are logged with their value obscured.
// Each struct is logged as a single line; nested fields are not logged
// separately.
func LogConfigs(logger *zap.Logger, configs ...interface{}) error {
	for _, config := range configs {

		v := reflect.ValueOf(config)
		t := reflect.TypeOf(config)

		if v.Kind() == reflect.Ptr {
			v = v.Elem()
			t = t.Elem()
		} else {
			return ErrConfigNotPointer
		}

		masked := maskStructFields(v, t)

		logger.Info("Config", zap.Any(t.Name(), masked))
	}
	return nil
}

// maskStructFields builds a field map, masking fields tagged masked:"true".
func maskStructFields(v reflect.Value, t reflect.Type) map[string]interface{} {
	result := make(map[string]interface{})
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)
		masked := fieldType.Tag.Get("masked")

		switch field.Kind() {

		// Nested structs are processed recursively.
		case reflect.Struct:
			result[fieldType.Name] = maskStructFields(field, field.Type())

		// Strings are masked when tagged.
		case reflect.String:
			if masked == "true" {
				result[fieldType.Name] = maskSensitiveData(field.String())
			} else {
				result[fieldType.Name] = field.String()
			}

		// Everything else goes into the map as is.
		default:
			result[fieldType.Name] = field.Interface()
		}
	}
	return result
}

// maskSensitiveData obscures a string keeping only the first and last
// characters. Strings of two characters or fewer become "****".
func maskSensitiveData(data string) string {
	if len(data) <= 2 {
		return "****"
	}
	return string(data[0]) + "****" + string(data[len(data)-1])
}
