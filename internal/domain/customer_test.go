package domain

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "11987654321", NormalizePhone("(11) 98765-4321"))
	assert.Equal(t, "5511987654321", NormalizePhone("+55 11 98765 4321"))
	assert.Equal(t, "", NormalizePhone("no digits"))
	assert.Equal(t, "2", NormalizePhone("１2"))
}

func TestCustomerValidate(t *testing.T) {
	valid := Customer{CompanyName: " Acme ", ContactName: "Jane Doe", Phone: "(11) 98765-4321"}

	tests := []struct {
		name  string
		mod   func(c *Customer)
		field string
	}{
		{name: "valid", mod: func(c *Customer) {}},
		{name: "empty company", mod: func(c *Customer) { c.CompanyName = "   " }, field: "companyName"},
		{name: "empty contact", mod: func(c *Customer) { c.ContactName = "" }, field: "contactName"},
		{name: "long company", mod: func(c *Customer) { c.CompanyName = strings.Repeat("a", MaxNameLength+1) }, field: "companyName"},
		{name: "formatted short phone", mod: func(c *Customer) { c.Phone = "(11) 9876-543" }, field: "phone"},
		{name: "nine digits", mod: func(c *Customer) { c.Phone = "119876543" }, field: "phone"},
		{name: "too many digits", mod: func(c *Customer) { c.Phone = "1234567890123456" }, field: "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mod(&c)

			err := c.Normalize().Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			fe, ok := AsFieldError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestCustomerNormalize(t *testing.T) {
	c := Customer{CompanyName: "  Acme  ", ContactName: "\tJane Doe\n", Phone: "11 98765-4321"}.Normalize()

	assert.Equal(t, "Acme", c.CompanyName)
	assert.Equal(t, "Jane Doe", c.ContactName)
	assert.Equal(t, "11987654321", c.Phone)
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Size: 20}.Offset())
	assert.Equal(t, 40, Page{Number: 3, Size: 20}.Offset())
	assert.Equal(t, 0, Page{Number: 0, Size: 20}.Offset())
}

func TestPageBeyond(t *testing.T) {
	assert.False(t, Page{Number: 1, Size: 20}.Beyond(1))
	assert.False(t, Page{Number: 3, Size: 20}.Beyond(45))
	assert.True(t, Page{Number: 4, Size: 20}.Beyond(45))
	assert.True(t, Page{Number: 1, Size: 20}.Beyond(0))
	assert.True(t, Page{Number: math.MaxInt/20 + 2, Size: 20}.Beyond(3))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, BookingsPage{TotalCount: 0, PageSize: 20}.TotalPages())
	assert.Equal(t, 1, BookingsPage{TotalCount: 20, PageSize: 20}.TotalPages())
	assert.Equal(t, 2, BookingsPage{TotalCount: 21, PageSize: 20}.TotalPages())
}

func TestCustomerValidateWith(t *testing.T) {
	c := Customer{CompanyName: "Acme", ContactName: "Jane", Phone: "98765432"}

	require.NoError(t, c.ValidateWith(8))

	err := c.ValidateWith(MinPhoneDigits)
	fe, ok := AsFieldError(err)
	require.True(t, ok)
	assert.Equal(t, "phone", fe.Field)
	assert.Equal(t, "phone must have at least 10 digits", fe.Message)
}
