package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullRecord() FormRecord {
	return FormRecord{
		FullName:       "Jane Doe",
		Company:        "Acme Inc",
		Email:          "jane@acme.test",
		BrandChannel:   "https://acme.test",
		Offer:          "Consulting",
		Implementation: ImplementationNo,
	}
}

func TestFormRecordComplete(t *testing.T) {
	assert.True(t, fullRecord().Complete())
	assert.False(t, FormRecord{}.Complete())

	for _, name := range ApplicationFields {
		t.Run("missing "+name, func(t *testing.T) {
			record := fullRecord()
			record.Set(name, "")
			assert.False(t, record.Complete())
		})
	}

	t.Run("selector must be yes or no", func(t *testing.T) {
		record := fullRecord()
		record.Implementation = "maybe"
		assert.False(t, record.Complete())
	})

	t.Run("values are not format checked", func(t *testing.T) {
		record := fullRecord()
		record.Email = "not-an-email"
		record.BrandChannel = " "
		assert.True(t, record.Complete())
	})
}

func TestFormRecordGetSet(t *testing.T) {
	var record FormRecord
	assert.True(t, record.IsEmpty())

	for _, name := range ApplicationFields {
		assert.True(t, record.Set(name, "v-"+name))
	}
	for _, name := range ApplicationFields {
		assert.Equal(t, "v-"+name, record.Get(name))
	}

	assert.False(t, record.Set("phone", "555"))
	assert.Equal(t, "", record.Get("phone"))
	assert.False(t, record.IsEmpty())
}

func TestApplicationFieldsOrder(t *testing.T) {
	assert.Equal(t, []string{"fullName", "company", "email", "brandChannel", "offer", "implementation"}, ApplicationFields)
}
