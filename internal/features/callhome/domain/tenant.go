package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
)

const (
	// StorageInsightsActivatedTitle is shown after the first opt-in.
	StorageInsightsActivatedTitle = "Activated IBM Storage Insights"
	// StorageInsightsUpdatedTitle is shown when an existing opt-in changes tenant.
	StorageInsightsUpdatedTitle = "Updated IBM Storage Insights Configuration"
)

// ErrCallHomeDisabled is returned by the Storage Insights flows while the
// call home agent is not running.
var ErrCallHomeDisabled = errors.New("call home must be enabled before opting in to storage insights")

// TenantOwner identifies the IBM account whose Storage Insights tenants are used.
type TenantOwner struct {
	IBMID       string `json:"ibm_id"`
	CompanyName string `json:"company_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
}

// Validate requires every field and a well-formed email.
func (o TenantOwner) Validate() error {
	errs := FieldErrors{}

	for field, value := range o.Params() {
		if value == "" {
			errs[field] = "is required"
		}
	}
	if _, missing := errs["email"]; !missing && !govalidator.IsEmail(strings.TrimSpace(o.Email)) {
		errs["email"] = "must be a valid email address"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Params returns the trimmed fields keyed by their manager argument names.
func (o TenantOwner) Params() map[string]string {
	return map[string]string{
		"ibm_id":       strings.TrimSpace(o.IBMID),
		"company_name": strings.TrimSpace(o.CompanyName),
		"first_name":   strings.TrimSpace(o.FirstName),
		"last_name":    strings.TrimSpace(o.LastName),
		"email":        strings.TrimSpace(o.Email),
	}
}

// Tenant is one Storage Insights instance the owner can report to.
type Tenant struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
	ExternalURL string `json:"external_url"`
}

type tenantList struct {
	Instances []struct {
		CompanyName string `json:"company-name"`
		ExternalURL string `json:"external_url"`
	} `json:"si-instances"`
}

// ParseTenants decodes the agent's tenant listing. The tenant ID is the last
// path segment of the instance URL.
func ParseTenants(raw json.RawMessage) ([]Tenant, error) {
	var list tenantList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("domain: failed to decode tenants: %w", err)
	}

	tenants := make([]Tenant, 0, len(list.Instances))
	for _, inst := range list.Instances {
		url := strings.TrimRight(inst.ExternalURL, "/")
		tenants = append(tenants, Tenant{
			ID:          url[strings.LastIndex(url, "/")+1:],
			CompanyName: inst.CompanyName,
			ExternalURL: inst.ExternalURL,
		})
	}
	return tenants, nil
}
