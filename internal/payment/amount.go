package payment

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Domestic amounts are charged in Rials but shown in Tomans at a fixed 10:1
// ratio. Narrowing truncates toward zero so a displayed price never
// overstates the charge.

// TomansToRials widens a display amount to the gateway's minor unit.
func TomansToRials(tomans int64) int64 {
	return tomans * 10
}

// RialsToTomans narrows a minor-unit amount to the display unit.
func RialsToTomans(rials int64) int64 {
	return rials / 10
}

// FormatAmount renders an amount for display. IRR amounts are converted to
// Tomans and grouped; other ISO codes go through the currency formatter; an
// unknown code falls back to "<number> <code>".
func FormatAmount(amount int64, code, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)

	if code == "" || code == "IRR" {
		return p.Sprintf("%v تومان", number.Decimal(RialsToTomans(amount)))
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return p.Sprintf("%v %s", number.Decimal(amount), code)
	}
	return p.Sprintf("%v", currency.Symbol(unit.Amount(amount)))
}
