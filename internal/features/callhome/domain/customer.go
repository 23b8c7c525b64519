package domain

import (
	"errors"
	"sort"
	"strings"

	"github.com/asaskevich/govalidator"
)

const (
	// ActivatedTitle is shown once the agent runs after activation.
	ActivatedTitle = "Activated IBM Call Home Agent"
	// DeactivatedTitle is shown once the manager is back after deactivation.
	DeactivatedTitle = "Deactivated IBM Call Home Agent"
)

// ErrInvalidCustomerInfo is wrapped by every FieldErrors.
var ErrInvalidCustomerInfo = errors.New("invalid customer information")

// CustomerInfo is the form submitted to activate Call Home.
type CustomerInfo struct {
	CustomerNumber  string `json:"customer_number"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Address         string `json:"address,omitempty"`
	CompanyName     string `json:"company_name,omitempty"`
	CountryCode     string `json:"country_code"`
	LicenseAccepted bool   `json:"license_accepted"`
}

// FieldErrors maps a form field to what is wrong with it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return ErrInvalidCustomerInfo.Error() + ": " + strings.Join(parts, "; ")
}

func (e FieldErrors) Unwrap() error {
	return ErrInvalidCustomerInfo
}

// Validate checks the form. It returns FieldErrors listing every problem.
func (c CustomerInfo) Validate() error {
	errs := FieldErrors{}

	required := map[string]string{
		"customer_number": c.CustomerNumber,
		"first_name":      c.FirstName,
		"last_name":       c.LastName,
		"email":           c.Email,
		"phone":           c.Phone,
		"country_code":    c.CountryCode,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs[field] = "is required"
		}
	}

	if _, missing := errs["email"]; !missing && !govalidator.IsEmail(strings.TrimSpace(c.Email)) {
		errs["email"] = "must be a valid email address"
	}
	if !c.LicenseAccepted {
		errs["license_accepted"] = "the license agreement must be accepted"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ModuleOptions maps the form to the call home agent module options.
func (c CustomerInfo) ModuleOptions() map[string]any {
	return map[string]any{
		"icn":                   strings.TrimSpace(c.CustomerNumber),
		"customer_first_name":   strings.TrimSpace(c.FirstName),
		"customer_last_name":    strings.TrimSpace(c.LastName),
		"customer_email":        strings.TrimSpace(c.Email),
		"customer_phone":        strings.TrimSpace(c.Phone),
		"customer_address":      strings.TrimSpace(c.Address),
		"customer_company_name": strings.TrimSpace(c.CompanyName),
		"customer_country_code": strings.TrimSpace(c.CountryCode),
	}
}
