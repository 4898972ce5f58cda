// Package currency converts between the supported travel currencies using a
// static table of rates against the US dollar.
package currency

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"wayfarer/models"

	"github.com/samber/lo"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrUnsupportedCurrency = errors.New("unsupported currency")

var supported = []models.Currency{
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "HKD", Symbol: "$", Name: "Hong Kong Dollar"},
	{Code: "TWD", Symbol: "$", Name: "New Taiwan Dollar"},
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "CAD", Symbol: "$", Name: "Canadian Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "AUD", Symbol: "$", Name: "Australian Dollar"},
	{Code: "NZD", Symbol: "$", Name: "New Zealand Dollar"},
	{Code: "CHF", Symbol: "Fr", Name: "Swiss Franc"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "KRW", Symbol: "₩", Name: "South Korean Won"},
	{Code: "THB", Symbol: "฿", Name: "Thai Baht"},
	{Code: "SGD", Symbol: "$", Name: "Singapore Dollar"},
	{Code: "MYR", Symbol: "RM", Name: "Malaysian Ringgit"},
	{Code: "PHP", Symbol: "₱", Name: "Philippine Peso"},
	{Code: "IDR", Symbol: "Rp", Name: "Indonesian Rupiah"},
	{Code: "VND", Symbol: "₫", Name: "Vietnamese Dong"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "AED", Symbol: "د.إ", Name: "UAE Dirham"},
	{Code: "BRL", Symbol: "R$", Name: "Brazilian Real"},
	{Code: "ZAR", Symbol: "R", Name: "South African Rand"},
	{Code: "MXN", Symbol: "$", Name: "Mexican Peso"},
	{Code: "SEK", Symbol: "kr", Name: "Swedish Krona"},
	{Code: "NOK", Symbol: "kr", Name: "Norwegian Krone"},
	{Code: "DKK", Symbol: "kr", Name: "Danish Krone"},
	{Code: "PLN", Symbol: "zł", Name: "Polish Zloty"},
	{Code: "TRY", Symbol: "₺", Name: "Turkish Lira"},
	{Code: "SAR", Symbol: "﷼", Name: "Saudi Riyal"},
	{Code: "ILS", Symbol: "₪", Name: "Israeli New Shekel"},
	{Code: "EGP", Symbol: "E£", Name: "Egyptian Pound"},
}

// Units of each currency per US dollar.
var usdRates = map[string]float64{
	"USD": 1.0, "JPY": 150.25, "HKD": 7.82, "TWD": 31.5, "CAD": 1.35, "EUR": 0.92,
	"GBP": 0.79, "AUD": 1.53, "NZD": 1.62, "CHF": 0.88, "CNY": 7.19, "KRW": 1330.0,
	"THB": 35.8, "SGD": 1.34, "MYR": 4.77, "PHP": 56.1, "IDR": 15600.0, "VND": 24500.0,
	"INR": 83.0, "AED": 3.67, "BRL": 4.97, "ZAR": 19.1, "MXN": 17.05, "SEK": 10.4,
	"NOK": 10.5, "DKK": 6.85, "PLN": 3.98, "TRY": 31.2, "SAR": 3.75, "ILS": 3.65, "EGP": 30.9,
}

var printer = message.NewPrinter(language.English)

// Currencies lists the supported currencies in display order.
func Currencies() []models.Currency {
	return append([]models.Currency(nil), supported...)
}

// Lookup validates code as an ISO 4217 code and returns it if supported.
func Lookup(code string) (models.Currency, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return models.Currency{}, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}
	c, ok := lo.Find(supported, func(c models.Currency) bool { return c.Code == unit.String() })
	if !ok {
		return models.Currency{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, unit)
	}
	return c, nil
}

// Rate returns how many units of to one unit of from buys.
func Rate(from, to string) (float64, error) {
	src, err := Lookup(from)
	if err != nil {
		return 0, err
	}
	dst, err := Lookup(to)
	if err != nil {
		return 0, err
	}
	if src.Code == dst.Code {
		return 1, nil
	}
	return usdRates[dst.Code] / usdRates[src.Code], nil
}

// Convert prices amount of from in to, rounded to cents.
func Convert(from, to string, amount float64) (models.Conversion, error) {
	rate, err := Rate(from, to)
	if err != nil {
		return models.Conversion{}, err
	}
	dst, _ := Lookup(to)
	src, _ := Lookup(from)

	result := Round(amount * rate)
	return models.Conversion{
		From:      src.Code,
		To:        dst.Code,
		Amount:    amount,
		Rate:      rate,
		Result:    result,
		Formatted: Format(dst, result),
	}, nil
}

// Swap exchanges the two sides of a conversion and reprices the same amount.
func Swap(c models.Conversion) (models.Conversion, error) {
	return Convert(c.To, c.From, c.Amount)
}

func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

func Format(c models.Currency, amount float64) string {
	return c.Symbol + printer.Sprintf("%.2f", amount)
}
