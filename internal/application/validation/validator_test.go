package validation_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-console/internal/application/validation"
)

type lineForm struct {
	Quantity  int `json:"quantity" validate:"gt=0,ltefield=Available"`
	Available int `json:"totalCurrent"`
}

type sampleForm struct {
	Name  string     `json:"name" validate:"required"`
	Email string     `json:"email" validate:"omitempty,email"`
	Kind  string     `json:"kind" validate:"required,oneof=A B"`
	Other string     `json:"other"`
	Lines []lineForm `json:"lines" validate:"required,min=1,dive"`
}

func TestValidate_ErroresPorCampoConNombresJSON(t *testing.T) {
	v := validation.New()

	err := v.Validate(sampleForm{
		Email: "no-es-email",
		Kind:  "C",
		Lines: []lineForm{{Quantity: 5, Available: 10}, {Quantity: 11, Available: 10}},
	})
	require.Error(t, err)

	verrs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.True(t, verrs.Has("name"))
	assert.True(t, verrs.Has("email"))
	assert.True(t, verrs.Has("kind"))
	assert.True(t, verrs.Has("lines[1].quantity"))
	assert.False(t, verrs.Has("lines[0].quantity"))
	assert.Equal(t, "supera la cantidad disponible del lote", verrs.Fields["lines[1].quantity"])
}

func TestValidate_RefinamientoEntreCampos(t *testing.T) {
	v := validation.New()
	v.RegisterStructRule(func(sl validator.StructLevel) {
		f := sl.Current().Interface().(sampleForm)
		if f.Kind == "B" && f.Other == "" {
			sl.ReportError(f.Other, "other", "Other", "required_for_exit_type", "")
		}
	}, sampleForm{})

	err := v.Validate(sampleForm{Name: "x", Kind: "B", Lines: []lineForm{{Quantity: 1, Available: 1}}})
	verrs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "campo obligatorio", verrs.Fields["other"])

	assert.NoError(t, v.Validate(sampleForm{Name: "x", Kind: "A", Lines: []lineForm{{Quantity: 1, Available: 1}}}))
}
