// Package validation reúne las reglas de campo y de negocio para productos,
// bodegas y movimientos. Todas las funciones son puras y acumulan cada regla
// violada en un único *domain.ValidationError.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	productCodePattern = regexp.MustCompile(`^[A-Z0-9_-]{1,50}$`)
	barcodePattern     = regexp.MustCompile(`^[0-9]{8,13}$`)
	dimensionsPattern  = regexp.MustCompile(`^\d+(\.\d+)?\s*x\s*\d+(\.\d+)?\s*x\s*\d+(\.\d+)?$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Los decimales se validan como texto para no perder la escala.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})

	must(v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}))
	must(v.RegisterValidation("product_code", regexpRule(productCodePattern)))
	must(v.RegisterValidation("barcode", regexpRule(barcodePattern)))
	must(v.RegisterValidation("dimensions", regexpRule(dimensionsPattern)))
	must(v.RegisterValidation("dec_gte0", decimalRule(func(d decimal.Decimal, _ string) bool {
		return !d.IsNegative()
	})))
	must(v.RegisterValidation("dec_gt0", decimalRule(func(d decimal.Decimal, _ string) bool {
		return d.IsPositive()
	})))
	must(v.RegisterValidation("dec_lte", decimalRule(func(d decimal.Decimal, param string) bool {
		limit, err := decimal.NewFromString(param)
		return err == nil && d.LessThanOrEqual(limit)
	})))
	must(v.RegisterValidation("dec_scale2", decimalRule(func(d decimal.Decimal, _ string) bool {
		return scaleOK(d, 2)
	})))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func regexpRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func decimalRule(check func(d decimal.Decimal, param string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return check(d, fl.Param())
	}
}

// scaleOK true si d tiene como máximo n decimales significativos.
func scaleOK(d decimal.Decimal, n int32) bool {
	return d.Equal(d.Truncate(n))
}

// collect ejecuta las reglas de struct y traduce cada fallo a un mensaje.
func collect(s interface{}) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return msgs
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s es obligatorio", field)
	case "max":
		return fmt.Sprintf("%s no puede superar %s caracteres", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	case "product_code":
		return fmt.Sprintf("%s debe tener de 1 a 50 caracteres en mayúsculas, dígitos, '-' o '_'", field)
	case "barcode":
		return fmt.Sprintf("%s debe tener entre 8 y 13 dígitos", field)
	case "dimensions":
		return fmt.Sprintf("%s debe tener el formato LxAxH (ej. 10x20x5.5)", field)
	case "dec_gte0":
		return fmt.Sprintf("%s no puede ser negativo", field)
	case "dec_gt0":
		return fmt.Sprintf("%s debe ser mayor que cero", field)
	case "dec_lte":
		return fmt.Sprintf("%s no puede superar %s", field, fe.Param())
	case "dec_scale2":
		return fmt.Sprintf("%s admite como máximo 2 decimales", field)
	default:
		return fmt.Sprintf("%s no es válido (%s)", field, fe.Tag())
	}
}
