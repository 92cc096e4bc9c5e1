package payment

// GatewayID identifies a supported payment gateway. The set is closed:
// adding a provider means adding a descriptor here, a payload builder in
// payload.go and a success predicate in predicates.go.
type GatewayID string

const (
	Zibal    GatewayID = "zibal"
	ZarinPal GatewayID = "zarinpal"
	IDPay    GatewayID = "idpay"
	PayStar  GatewayID = "paystar"
	NextPay  GatewayID = "nextpay"
	OxaPay   GatewayID = "oxapay"
	Stripe   GatewayID = "stripe"
)

// Descriptor captures one gateway's wire conventions: how the proxy routes
// its create/verify calls and which query parameter carries its transaction
// reference on redirect.
type Descriptor struct {
	ID              GatewayID
	Name            string
	LocalName       string
	CreateOp        string
	VerifyOp        string
	DefaultCurrency string
	MinAmount       int64
	TrackIDParam    string
	International   bool
}

var gateways = map[GatewayID]Descriptor{
	Zibal: {
		ID:              Zibal,
		Name:            "Zibal",
		LocalName:       "زیبال",
		CreateOp:        "request",
		VerifyOp:        "verify",
		DefaultCurrency: "IRR",
		MinAmount:       1000,
		TrackIDParam:    "trackId",
	},
	ZarinPal: {
		ID:              ZarinPal,
		Name:            "ZarinPal",
		LocalName:       "زرین‌پال",
		CreateOp:        "request",
		VerifyOp:        "verify",
		DefaultCurrency: "IRR",
		MinAmount:       1000,
		TrackIDParam:    "Authority",
	},
	IDPay: {
		ID:              IDPay,
		Name:            "IDPay",
		LocalName:       "آیدی پی",
		CreateOp:        "request",
		VerifyOp:        "verify",
		DefaultCurrency: "IRR",
		MinAmount:       1000,
		TrackIDParam:    "id",
	},
	PayStar: {
		ID:              PayStar,
		Name:            "PayStar",
		LocalName:       "پی استار",
		CreateOp:        "create",
		VerifyOp:        "verify",
		DefaultCurrency: "IRR",
		MinAmount:       5000,
		TrackIDParam:    "ref_num",
	},
	NextPay: {
		ID:              NextPay,
		Name:            "NextPay",
		LocalName:       "نکست پی",
		CreateOp:        "request",
		VerifyOp:        "verify",
		DefaultCurrency: "IRR",
		MinAmount:       1000,
		TrackIDParam:    "trans_id",
	},
	OxaPay: {
		ID:              OxaPay,
		Name:            "OxaPay",
		LocalName:       "اکساپی (کریپتو)",
		CreateOp:        "create",
		VerifyOp:        "verify",
		DefaultCurrency: "USD",
		MinAmount:       1,
		TrackIDParam:    "trackId",
		International:   true,
	},
	Stripe: {
		ID:              Stripe,
		Name:            "Stripe",
		LocalName:       "استرایپ",
		CreateOp:        "checkout",
		VerifyOp:        "verify",
		DefaultCurrency: "USD",
		MinAmount:       50, // cents
		TrackIDParam:    "session_id",
		International:   true,
	},
}

// gatewayOrder fixes List output and the resolver's probe order.
var gatewayOrder = []GatewayID{Zibal, ZarinPal, IDPay, PayStar, NextPay, OxaPay, Stripe}

// IsValidID reports whether candidate names a known gateway. Callers must
// check this before calling Describe with untrusted input.
func IsValidID(candidate string) bool {
	_, ok := gateways[GatewayID(candidate)]
	return ok
}

// Describe returns the descriptor for a known gateway id.
func Describe(id GatewayID) Descriptor {
	return gateways[id]
}

// ListFilter narrows List to one settlement class.
type ListFilter int

const (
	ListAll ListFilter = iota
	ListDomestic
	ListInternational
)

// List returns gateway descriptors in a stable order.
func List(filter ListFilter) []Descriptor {
	out := make([]Descriptor, 0, len(gatewayOrder))
	for _, id := range gatewayOrder {
		desc := gateways[id]
		switch filter {
		case ListDomestic:
			if desc.International {
				continue
			}
		case ListInternational:
			if !desc.International {
				continue
			}
		}
		out = append(out, desc)
	}
	return out
}
