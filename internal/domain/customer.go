package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Customer is the contact data supplied with a reservation
type Customer struct {
	CompanyName string
	ContactName string
	Phone       string
}

// Normalize trims the names and reduces the phone to its digits
func (c Customer) Normalize() Customer {
	return Customer{
		CompanyName: strings.TrimSpace(c.CompanyName),
		ContactName: strings.TrimSpace(c.ContactName),
		Phone:       NormalizePhone(c.Phone),
	}
}

// Validate checks an already normalized customer
func (c Customer) Validate() error {
	return c.ValidateWith(MinPhoneDigits)
}

// ValidateWith is Validate with a custom minimum phone length
func (c Customer) ValidateWith(minPhoneDigits int) error {
	if c.CompanyName == "" {
		return NewFieldError("companyName", "company name is required")
	}
	if utf8.RuneCountInString(c.CompanyName) > MaxNameLength {
		return NewFieldError("companyName", "company name is too long")
	}
	if c.ContactName == "" {
		return NewFieldError("contactName", "contact name is required")
	}
	if utf8.RuneCountInString(c.ContactName) > MaxNameLength {
		return NewFieldError("contactName", "contact name is too long")
	}
	if len(c.Phone) < minPhoneDigits {
		return NewFieldError("phone", fmt.Sprintf("phone must have at least %d digits", minPhoneDigits))
	}
	if len(c.Phone) > MaxPhoneDigits {
		return NewFieldError("phone", fmt.Sprintf("phone must have at most %d digits", MaxPhoneDigits))
	}
	return nil
}

// NormalizePhone keeps only ASCII digits: "(11) 98765-4321" -> "11987654321"
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r <= unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
