package payment

import "strings"

// buildCreatePayload assembles the create request body for one gateway. The
// proxy is a thin pass-through, so each provider gets exactly the field
// names it expects. Empty fields are omitted, never sent as null.
func buildCreatePayload(desc Descriptor, req IntentRequest) map[string]any {
	body := map[string]any{"amount": req.Amount}

	code := req.Currency
	if code == "" {
		code = desc.DefaultCurrency
	}

	switch desc.ID {
	case Zibal:
		put(body, "callbackUrl", req.CallbackURL)
		put(body, "description", req.Description)
		put(body, "orderId", req.OrderID)
		put(body, "mobile", req.Phone)
	case ZarinPal:
		put(body, "callback_url", req.CallbackURL)
		put(body, "description", req.Description)
		put(body, "order_id", req.OrderID)
		put(body, "mobile", req.Phone)
		put(body, "email", req.Email)
	case IDPay:
		put(body, "callback", req.CallbackURL)
		put(body, "desc", req.Description)
		put(body, "order_id", req.OrderID)
		put(body, "phone", req.Phone)
		put(body, "mail", req.Email)
		put(body, "name", req.Name)
	case PayStar:
		put(body, "callback", req.CallbackURL)
		put(body, "description", req.Description)
		put(body, "order_id", req.OrderID)
		put(body, "phone", req.Phone)
	case NextPay:
		put(body, "callback_uri", req.CallbackURL)
		put(body, "order_id", req.OrderID)
		put(body, "customer_phone", req.Phone)
	case OxaPay:
		body["currency"] = code
		put(body, "return_url", req.CallbackURL)
		put(body, "description", req.Description)
		put(body, "order_id", req.OrderID)
		put(body, "email", req.Email)
	case Stripe:
		body["currency"] = strings.ToLower(code)
		if req.CallbackURL != "" {
			body["success_url"] = appendQuery(req.CallbackURL, "status=success")
			body["cancel_url"] = appendQuery(req.CallbackURL, "status=cancelled")
		}
		put(body, "product_name", req.Description)
		put(body, "order_id", req.OrderID)
		put(body, "email", req.Email)
	}

	if len(req.Metadata) > 0 {
		body["metadata"] = req.Metadata
	}
	return body
}

func put(body map[string]any, key, value string) {
	if value != "" {
		body[key] = value
	}
}

func appendQuery(rawURL, pair string) string {
	if strings.Contains(rawURL, "?") {
		return rawURL + "&" + pair
	}
	return rawURL + "?" + pair
}
