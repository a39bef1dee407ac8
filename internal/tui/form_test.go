package tui

import (
	"testing"

	"ticketdesk-service/internal/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledForm(number string) *addForm {
	form := newAddForm()
	form.inputs[fieldNumber].SetValue(number)
	form.inputs[fieldClient].SetValue("B")
	form.inputs[fieldOperator].SetValue("A")
	form.inputs[fieldType].SetValue("adult")
	return form
}

func TestFormSubmit(t *testing.T) {
	t.Run("Single ticket", func(t *testing.T) {
		form := filledForm("00042")

		documents, err := form.submit()
		require.NoError(t, err)
		require.Len(t, documents, 1)
		assert.Equal(t, "00042", documents[0].TicketNumber)
		assert.Equal(t, "B", documents[0].Client)
		assert.NotEmpty(t, documents[0].Date)
	})

	t.Run("Serial range expands client-side", func(t *testing.T) {
		form := filledForm("1")
		form.toggleSerial()
		form.inputs[fieldEnd].SetValue("3")

		documents, err := form.submit()
		require.NoError(t, err)
		require.Len(t, documents, 3)
		assert.Equal(t, "00001", documents[0].TicketNumber)
		assert.Equal(t, "00003", documents[2].TicketNumber)
		// Shared fields are copied onto every expanded document.
		assert.Equal(t, "adult", documents[1].Type)
	})

	t.Run("Failed - serial start past end", func(t *testing.T) {
		form := filledForm("00010")
		form.toggleSerial()
		form.inputs[fieldEnd].SetValue("00005")

		_, err := form.submit()
		assert.ErrorIs(t, err, client.ErrSerialOrder)
	})

	t.Run("Failed - missing required fields", func(t *testing.T) {
		form := newAddForm()
		form.inputs[fieldNumber].SetValue("00001")

		_, err := form.submit()
		assert.ErrorIs(t, err, errFormIncomplete)
	})
}

func TestFormNavigation(t *testing.T) {
	t.Run("Single mode skips the range-end field", func(t *testing.T) {
		form := newAddForm()
		require.Equal(t, fieldNumber, form.focus)

		form.nextField(false)
		assert.Equal(t, fieldClient, form.focus)

		form.nextField(true)
		assert.Equal(t, fieldNumber, form.focus)
	})

	t.Run("Serial mode includes the range-end field", func(t *testing.T) {
		form := newAddForm()
		form.toggleSerial()

		form.nextField(false)
		assert.Equal(t, fieldEnd, form.focus)
	})

	t.Run("Leaving serial mode moves focus off the hidden field", func(t *testing.T) {
		form := newAddForm()
		form.toggleSerial()
		form.nextField(false)
		require.Equal(t, fieldEnd, form.focus)

		form.toggleSerial()
		assert.Equal(t, fieldNumber, form.focus)
	})
}
