package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldType_DefaultSize(t *testing.T) {
	w, h := FieldCheckbox.DefaultSize()
	assert.Equal(t, 30.0, w)
	assert.Equal(t, 30.0, h)

	for _, ft := range []FieldType{FieldSignature, FieldInitials, FieldText, FieldDate} {
		w, h := ft.DefaultSize()
		assert.Equal(t, 200.0, w, string(ft))
		assert.Equal(t, 50.0, h, string(ft))
	}
}

func TestField_ValidatePlacement(t *testing.T) {
	valid := Field{
		ID:          "f1",
		RecipientID: "r1",
		Type:        FieldSignature,
		Page:        2,
		X:           10, Y: 20, W: 200, H: 50,
	}

	t.Run("valid", func(t *testing.T) {
		f := valid
		assert.NoError(t, f.ValidatePlacement(3))
	})

	t.Run("unknown type", func(t *testing.T) {
		f := valid
		f.Type = "stamp"
		assert.Error(t, f.ValidatePlacement(3))
	})

	t.Run("unassigned", func(t *testing.T) {
		f := valid
		f.RecipientID = ""
		assert.ErrorIs(t, f.ValidatePlacement(3), ErrFieldUnassigned)
	})

	t.Run("page out of range", func(t *testing.T) {
		f := valid
		f.Page = 4
		assert.Error(t, f.ValidatePlacement(3))

		f.Page = 0
		assert.Error(t, f.ValidatePlacement(3))
	})

	t.Run("negative geometry", func(t *testing.T) {
		f := valid
		f.X = -1
		assert.Error(t, f.ValidatePlacement(3))
	})
}
