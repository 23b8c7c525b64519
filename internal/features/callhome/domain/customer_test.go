package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInfo() CustomerInfo {
	return CustomerInfo{
		CustomerNumber:  "1234567",
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Phone:           "+44 20 7946 0000",
		CountryCode:     "GB",
		LicenseAccepted: true,
	}
}

func TestCustomerInfo_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CustomerInfo)
		fields []string
	}{
		{name: "Valid without optional fields", modify: func(*CustomerInfo) {}},
		{name: "Valid with optional fields", modify: func(c *CustomerInfo) {
			c.Address = "1 Analytical Way"
			c.CompanyName = "Engines Ltd"
		}},
		{name: "Missing customer number", modify: func(c *CustomerInfo) { c.CustomerNumber = " " }, fields: []string{"customer_number"}},
		{name: "Missing names", modify: func(c *CustomerInfo) {
			c.FirstName = ""
			c.LastName = ""
		}, fields: []string{"first_name", "last_name"}},
		{name: "Missing email", modify: func(c *CustomerInfo) { c.Email = "" }, fields: []string{"email"}},
		{name: "Malformed email", modify: func(c *CustomerInfo) { c.Email = "not-an-email" }, fields: []string{"email"}},
		{name: "Missing phone and country", modify: func(c *CustomerInfo) {
			c.Phone = ""
			c.CountryCode = ""
		}, fields: []string{"phone", "country_code"}},
		{name: "License not accepted", modify: func(c *CustomerInfo) { c.LicenseAccepted = false }, fields: []string{"license_accepted"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := validInfo()
			tt.modify(&info)

			err := info.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrInvalidCustomerInfo)
			var fieldErrs FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Len(t, fieldErrs, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, fieldErrs, f)
			}
		})
	}
}

func TestFieldErrors_Error(t *testing.T) {
	err := FieldErrors{"phone": "is required", "email": "must be a valid email address"}
	assert.Equal(t, "invalid customer information: email: must be a valid email address; phone: is required", err.Error())
}

func TestCustomerInfo_ModuleOptions(t *testing.T) {
	info := validInfo()
	info.FirstName = " Ada "

	opts := info.ModuleOptions()
	assert.Equal(t, "1234567", opts["icn"])
	assert.Equal(t, "Ada", opts["customer_first_name"])
	assert.Equal(t, "ada@example.com", opts["customer_email"])
	assert.Equal(t, "GB", opts["customer_country_code"])
	assert.Equal(t, "", opts["customer_company_name"])
	assert.Len(t, opts, 8)
}

func TestParseReportType(t *testing.T) {
	for _, s := range []string{"inventory", "status", "last_contact", "alerts"} {
		rt, err := ParseReportType(s)
		require.NoError(t, err)
		assert.Equal(t, ReportType(s), rt)
	}

	_, err := ParseReportType("secrets")
	assert.ErrorIs(t, err, ErrUnknownReportType)
}
