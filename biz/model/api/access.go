package api

// AccessCheckRequest asks whether a role may perform a function in an environment.
// An empty role falls back to the caller's X-Role header.
type AccessCheckRequest struct {
	Role        string `query:"role"`
	Function    string `query:"function"`
	Environment string `query:"environment"`
}

// AccessCheckResult answers an AccessCheckRequest.
type AccessCheckResult struct {
	Role        string `json:"role"`
	Function    string `json:"function"`
	Environment string `json:"environment"`
	Allowed     bool   `json:"allowed"`
}

// AccessRule is one stored permission row.
type AccessRule struct {
	Role        string `json:"role"`
	Function    string `json:"function"`
	Environment string `json:"environment"`
	Allowed     bool   `json:"allowed"`
}

// ListAccessRulesRequest filters rule listings.
type ListAccessRulesRequest struct {
	Role string `query:"role"`
}
