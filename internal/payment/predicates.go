package payment

import "strconv"

// successPredicates maps each gateway to its own encoding of a settled
// payment. The table is exhaustive over the gateway set; an unrecognized
// response is "not paid", never an error.
var successPredicates = map[GatewayID]func(data map[string]any) bool{
	Zibal: func(data map[string]any) bool {
		code, ok := numberField(data, "result")
		return ok && (code == 100 || code == 201) // 201: already verified
	},
	ZarinPal: func(data map[string]any) bool {
		return stringField(data, "status") == "success"
	},
	IDPay: func(data map[string]any) bool {
		code, ok := numberField(data, "status")
		return ok && code == 100
	},
	PayStar: func(data map[string]any) bool {
		code, ok := numberField(data, "status")
		return ok && code == 1
	},
	NextPay: func(data map[string]any) bool {
		code, ok := numberField(data, "code")
		return ok && code == 0
	},
	OxaPay: func(data map[string]any) bool {
		return stringField(data, "status") == "Paid"
	},
	Stripe: func(data map[string]any) bool {
		return stringField(data, "status") == "paid"
	},
}

// isPaid applies the gateway's success predicate to a raw verify response.
func isPaid(id GatewayID, data map[string]any) bool {
	pred, ok := successPredicates[id]
	if !ok || data == nil {
		return false
	}
	return pred(data)
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

// numberField reads a numeric field. JSON decoding yields float64; plain int
// is accepted for callers constructing maps directly.
func numberField(data map[string]any, key string) (int64, bool) {
	switch v := data[key].(type) {
	case float64:
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

// firstString returns the first present key, stringifying numeric values
// (Zibal returns its track id as a number).
func firstString(data map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := data[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int64:
			return strconv.FormatInt(v, 10)
		case int:
			return strconv.Itoa(v)
		}
	}
	return ""
}
