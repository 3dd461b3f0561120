package message

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplyTemplate(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
		vars Vars
		want string
	}{
		{"known key", "Total: {total}", Vars{"total": "R$ 10,00"}, "Total: R$ 10,00"},
		{"unknown key kept", "Hi {xyz}!", Vars{"total": "1"}, "Hi {xyz}!"},
		{"empty value blanks", "[{notes}]", Vars{"notes": ""}, "[]"},
		{"repeated", "{a}{a}{b}", Vars{"a": "x", "b": "y"}, "xxy"},
		{"not an identifier", "{ a } {a-b} {}", Vars{"a": "x"}, "{ a } {a-b} {}"},
		{"nested braces", "{{a}}", Vars{"a": "x"}, "{x}"},
		{"value with braces not re-expanded", "{a}", Vars{"a": "{b}", "b": "no"}, "{b}"},
		{"nil vars", "{a}", nil, "{a}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyTemplate(tt.tpl, tt.vars))
		})
	}
}

func TestApplyTemplateDeterministic(t *testing.T) {
	vars := Vars{"customer_name": "Ana", "total": "R$ 5,00"}
	tpl := "{customer_name} {total} {missing}"
	assert.Equal(t, ApplyTemplate(tpl, vars), ApplyTemplate(tpl, vars))
}

func TestClampText(t *testing.T) {
	assert.Equal(t, "abc", ClampText("abcdef", 3))
	assert.Equal(t, "abc", ClampText("abc", 10))
	assert.Equal(t, "", ClampText("abc", 0))
	// counts characters, not bytes
	assert.Equal(t, "ação", ClampText("ações", 4))
	assert.Len(t, []rune(ClampText(strings.Repeat("é", 5000), 3500)), 3500)
}

func TestSanitizePhone(t *testing.T) {
	assert.Equal(t, "5511987654321", SanitizePhone("+55 (11) 98765-4321"))
	assert.Equal(t, "", SanitizePhone("n/a"))
}

func TestWhatsAppURL(t *testing.T) {
	got := WhatsAppURL("+55 11 98765-4321", "Olá & bem-vindo\nTotal: R$ 10,00")
	assert.Equal(t, "https://wa.me/5511987654321?text=Ol%C3%A1%20%26%20bem-vindo%0ATotal%3A%20R%24%2010%2C00", got)
}

func TestJoinBlocks(t *testing.T) {
	assert.Equal(t, "a\n\nb", JoinBlocks("a\n", "", "  \n", "b"))
	assert.Equal(t, "", JoinBlocks())
}

func TestMoneyFormatter(t *testing.T) {
	br := NewMoneyFormatter("pt-BR", "R$")
	assert.Equal(t, "R$ 58,90", br.Format(decimal.RequireFromString("58.9")))
	assert.Equal(t, "R$ 0,00", br.Format(decimal.Zero))

	us := NewMoneyFormatter("en", "$")
	assert.Equal(t, "$ 41.10", us.Format(decimal.RequireFromString("41.10")))

	bare := NewMoneyFormatter("en", "")
	assert.Equal(t, "5.00", bare.Format(decimal.NewFromInt(5)))
}
