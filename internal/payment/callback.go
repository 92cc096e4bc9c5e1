package payment

import "net/url"

// Resolver works out, from a redirect URL's query parameters, which gateway
// the user is returning from and what track id to verify. It performs no I/O
// and cannot fail: unresolvable input degrades to the default gateway and an
// absent track id.
type Resolver struct {
	defaultGateway GatewayID
	orderParam     string
}

// NewResolver creates a resolver falling back to def when no gateway can be
// inferred from the query string.
func NewResolver(def GatewayID) *Resolver {
	if !IsValidID(string(def)) {
		def = Zibal
	}
	return &Resolver{defaultGateway: def, orderParam: "orderNumber"}
}

// ResolveGateway picks the gateway for a callback. An explicit gateway
// parameter wins; otherwise provider-specific marker parameters are probed
// in a fixed order. The marker names are unique per provider today — a new
// registry entry must be checked against this table for collisions.
func (r *Resolver) ResolveGateway(query url.Values) GatewayID {
	if explicit := query.Get("gateway"); explicit != "" && IsValidID(explicit) {
		return GatewayID(explicit)
	}

	switch {
	case query.Has("Authority"):
		return ZarinPal
	case query.Has("trackId"):
		return Zibal
	case query.Has("id") && query.Has("order_id"):
		return IDPay
	case query.Has("trans_id"):
		return NextPay
	case query.Has("ref_num"):
		return PayStar
	case query.Has("session_id"):
		return Stripe
	}

	return r.defaultGateway
}

// trackIDFallbacks are parameter names providers have used historically,
// tried in order when the gateway's own parameter is absent.
var trackIDFallbacks = []string{
	"trackId", "track_id", "Authority", "id", "trans_id", "ref_num", "session_id", "token",
}

// ExtractTrackID pulls the transaction reference out of the query string.
// The second return is false when no recognized parameter carries a value —
// an expected outcome for malformed callbacks and direct navigation, not an
// error.
func (r *Resolver) ExtractTrackID(id GatewayID, query url.Values) (string, bool) {
	if IsValidID(string(id)) {
		if v := query.Get(Describe(id).TrackIDParam); v != "" {
			return v, true
		}
	}
	for _, name := range trackIDFallbacks {
		if v := query.Get(name); v != "" {
			return v, true
		}
	}
	return "", false
}

// CallbackContext is the resolved view of one redirect. Built once per
// callback, read-only afterward.
type CallbackContext struct {
	Gateway     GatewayID
	TrackID     string
	OrderNumber string
}

// Resolve builds the full callback context for a query string.
func (r *Resolver) Resolve(query url.Values) CallbackContext {
	gw := r.ResolveGateway(query)
	trackID, _ := r.ExtractTrackID(gw, query)
	return CallbackContext{
		Gateway:     gw,
		TrackID:     trackID,
		OrderNumber: query.Get(r.orderParam),
	}
}
