package payment

// FailureKind classifies why a gateway operation did not succeed.
type FailureKind string

const (
	FailureNone              FailureKind = ""
	FailureInvalidRequest    FailureKind = "invalid_request"
	FailureInvalidGateway    FailureKind = "invalid_gateway"
	FailureMissingTrackID    FailureKind = "missing_track_id"
	FailureRemoteRejected    FailureKind = "remote_rejected"
	FailureNetwork           FailureKind = "network_failure"
	FailureProviderAmbiguous FailureKind = "provider_ambiguous"
)

// IntentRequest describes a payment to be created. Amount is in the
// gateway's minor unit (Rials for domestic gateways); conversion from the
// display unit happens before this boundary.
type IntentRequest struct {
	Amount      int64
	Currency    string
	Description string
	OrderID     string
	CallbackURL string
	Phone       string
	Email       string
	Name        string
	Metadata    map[string]any
}

// IntentResult is the outcome of one create attempt. It is built once and
// discarded after the browser is redirected to PaymentURL.
type IntentResult struct {
	Success    bool           `json:"success"`
	TrackID    string         `json:"track_id,omitempty"`
	PaymentURL string         `json:"payment_url,omitempty"`
	Raw        map[string]any `json:"raw,omitempty"`
	Error      string         `json:"error,omitempty"`
	Kind       FailureKind    `json:"kind,omitempty"`
}

// VerificationResult is the normalized answer to "was this track id paid".
// Verification is idempotent: re-verifying an already settled payment counts
// as success.
type VerificationResult struct {
	Success    bool           `json:"success"`
	Status     string         `json:"status,omitempty"`
	RefNumber  string         `json:"ref_number,omitempty"`
	CardNumber string         `json:"card_number,omitempty"`
	Amount     int64          `json:"amount,omitempty"`
	Raw        map[string]any `json:"raw,omitempty"`
	Error      string         `json:"error,omitempty"`
	Kind       FailureKind    `json:"kind,omitempty"`
}
