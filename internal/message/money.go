package message

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	xmessage "golang.org/x/text/message"
)

// MoneyFormatter prints amounts with the store locale's separators, e.g. "R$ 10,00".
type MoneyFormatter struct {
	symbol  string
	printer *xmessage.Printer
}

func NewMoneyFormatter(locale, symbol string) *MoneyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	return &MoneyFormatter{symbol: symbol, printer: xmessage.NewPrinter(tag)}
}

func (f *MoneyFormatter) Format(amount decimal.Decimal) string {
	v := amount.Round(2).InexactFloat64()
	if f.symbol == "" {
		return f.printer.Sprintf("%.2f", v)
	}
	return f.symbol + " " + f.printer.Sprintf("%.2f", v)
}
