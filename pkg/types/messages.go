package types

// RootResponse describes the tree the proof service is serving
type RootResponse struct {
	Root          string `json:"root"`
	Leaves        int    `json:"leaves"`
	Depth         int    `json:"depth"`
	OddNodePolicy string `json:"odd_node_policy"`
	Snapshot      string `json:"snapshot,omitempty"` // Name of the stored snapshot, if served from persistence
}

// ProofResponse carries an inclusion proof in the form the claim contract takes
type ProofResponse struct {
	Address  string   `json:"address"`
	Leaf     string   `json:"leaf"`
	Proof    []string `json:"proof"` // 0x-prefixed 32-byte siblings, leaf to root
	Root     string   `json:"root"`
	Eligible bool     `json:"eligible"` // Whether the address is in the allowlist
}

// VerifyRequest asks the service to check a proof. Either Address or Leaf must
// be set; Root defaults to the served root.
type VerifyRequest struct {
	Address string   `json:"address,omitempty"`
	Leaf    string   `json:"leaf,omitempty"`
	Proof   []string `json:"proof"`
	Root    string   `json:"root,omitempty"`
}

// VerifyResponse is the verification result
type VerifyResponse struct {
	Valid bool   `json:"valid"`
	Root  string `json:"root"`
}

// EligibilityResponse combines allowlist membership with the on-chain claim status
type EligibilityResponse struct {
	Address  string   `json:"address"`
	Eligible bool     `json:"eligible"`
	Claimed  *bool    `json:"claimed,omitempty"` // Unset when no contract is configured
	Proof    []string `json:"proof"`
	Root     string   `json:"root"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
