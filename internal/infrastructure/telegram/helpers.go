package telegram

import "github.com/shopspring/decimal"

// FormatAmount переводит сумму в центах в строку долларов с двумя знаками.
func FormatAmount(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
