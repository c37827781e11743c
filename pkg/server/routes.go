package server

const (
	// PingEndpoint is the endpoint for checking the API status
	PingEndpoint = "/ping"
	// HealthEndpoint reports whether a tree is loaded and persistence is reachable
	HealthEndpoint = "/health"
	// RootEndpoint returns the root of the served tree
	RootEndpoint = "/root"
	// ProofEndpoint returns the inclusion proof of an address
	AddressURLParam = "address"
	ProofEndpoint   = "/proof/{" + AddressURLParam + "}"
	// VerifyEndpoint checks a proof
	VerifyEndpoint = "/verify"
	// EligibilityEndpoint returns the proof together with the claim status
	EligibilityEndpoint = "/eligibility/{" + AddressURLParam + "}"
	// ReloadEndpoint reloads the active snapshot from persistence
	ReloadEndpoint = "/reload"
)
