package finreport

import "testing"

func TestMoney_WeakCurrency(t *testing.T) {
	// The zero Money has no currency and adopts the other operand's.
	sum := Money{}.Add(eur(10))
	if sum.Currency() != EUR {
		t.Errorf("Currency() = %q, want %q", sum.Currency(), EUR)
	}
	if !sum.Equal(eur(10)) {
		t.Errorf("sum = %s, want %s", sum, eur(10))
	}
}

func TestMoney_MismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("adding EUR to USD should panic")
		}
	}()
	eur(1).Add(M(1, "USD"))
}

func TestMoney_RoundCents(t *testing.T) {
	m := eur(10).Div(q(3)).RoundCents()
	if want := eur(3.33); !m.Equal(want) {
		t.Errorf("RoundCents() = %s, want %s", m, want)
	}
}

func TestMoney_SignedString(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{eur(0), "-"},
		{eur(1.50), "+€1.50"},
		{eur(-2), "-€2.00"},
	}
	for _, tt := range tests {
		if got := tt.m.SignedString(); got != tt.want {
			t.Errorf("SignedString() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney("1234.56", EUR)
	if err != nil {
		t.Fatalf("ParseMoney() error = %v", err)
	}
	if !m.Equal(eur(1234.56)) {
		t.Errorf("ParseMoney() = %s, want %s", m, eur(1234.56))
	}
	if _, err := ParseMoney("abc", EUR); err == nil {
		t.Error("ParseMoney(abc) expected an error")
	}
}

func TestValidateCurrency(t *testing.T) {
	if err := ValidateCurrency("EUR"); err != nil {
		t.Errorf("ValidateCurrency(EUR) error = %v", err)
	}
	if err := ValidateCurrency("XYZ"); err == nil {
		t.Error("ValidateCurrency(XYZ) expected an error")
	}
}
