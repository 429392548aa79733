package models

// Role distinguishes the administrative account from regular tenants.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Status tracks the approval lifecycle of a tenant account.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// PrivilegedTenantID is the reserved identifier of the built-in admin
// account. It is re-asserted on every store bootstrap.
const PrivilegedTenantID = "root-admin"

// Tenant is a registered company account. Username is the natural key:
// unique case-insensitively and immutable after registration.
type Tenant struct {
	ID            string `json:"id"`
	CompanyName   string `json:"companyName"`
	Username      string `json:"username"`
	ContactPerson string `json:"contactPerson"`
	Password      string `json:"password"`
	Role          Role   `json:"role"`
	Status        Status `json:"status"`
}

// Privileged reports whether the tenant is the built-in admin account.
// The privileged tenant administers approvals and owns no business records.
func (t Tenant) Privileged() bool {
	return t.ID == PrivilegedTenantID
}
