// Package validation valida los DTOs de formularios con go-playground/validator
// y traduce los fallos a errores por campo, usando los nombres JSON del formulario.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator envuelve *validator.Validate con los nombres de campo JSON.
type Validator struct {
	v *validator.Validate
}

// New construye el validador. Las reglas entre campos se registran con RegisterStructRule.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

// RegisterStructRule registra una validación a nivel de struct (refinamientos entre campos).
func (val *Validator) RegisterStructRule(fn validator.StructLevelFunc, types ...interface{}) {
	val.v.RegisterStructValidation(fn, types...)
}

// Validate valida s y devuelve *Errors si algún campo falla.
func (val *Validator) Validate(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Errors{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fieldPath(fe.Namespace())] = message(fe)
	}
	return out
}

// Errors resultado de una validación fallida: ruta del campo -> mensaje.
type Errors struct {
	Fields map[string]string `json:"fields"`
}

func (e *Errors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Has indica si el campo (ruta JSON) tiene error.
func (e *Errors) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// AsErrors extrae *Errors de err, si lo contiene.
func AsErrors(err error) (*Errors, bool) {
	var ve *Errors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// fieldPath quita el nombre del struct raíz: "ExitForm.medicines[0].batches[1].quantity"
// -> "medicines[0].batches[1].quantity".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_for_exit_type":
		return "campo obligatorio"
	case "email":
		return "email inválido"
	case "uuid", "uuid4":
		return "identificador inválido"
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "gte", "min":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener al menos %s elemento(s)", fe.Param())
		}
		return fmt.Sprintf("debe ser al menos %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("debe ser como máximo %s", fe.Param())
	case "ltefield":
		return "supera la cantidad disponible del lote"
	case "nefield":
		return "no puede coincidir con el origen"
	case "datetime":
		return "fecha inválida"
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", fe.Param())
	case "len":
		return fmt.Sprintf("debe tener %s caracteres", fe.Param())
	case "numeric":
		return "debe contener solo números"
	default:
		return "valor inválido"
	}
}
