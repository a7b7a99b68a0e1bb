// Package validation holds the client-side rules for the transfer form.
package validation

import (
	"math/big"
	"regexp"
	"strings"
)

// User facing messages.
const (
	MsgInvalidAddress      = "Invalid address"
	MsgInsufficientBalance = "Insufficient balance"
	MsgOnlyPositiveInts    = "Only positive integers"
	MsgConnectionFailed    = "Connection failed"
	MsgUnknownError        = "Unknown error"
)

const minAmount = 1

var (
	addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	amountPattern  = regexp.MustCompile(`^\d+$`)
	balancePrefix  = regexp.MustCompile(`^(\d+(?:\.\d+)?)`)
)

// ValidateAddress reports whether address is a 0x-prefixed 40 hex digit string.
func ValidateAddress(address string) bool {
	return addressPattern.MatchString(strings.TrimSpace(address))
}

// ValidateAmount reports whether amount is a positive integer string.
func ValidateAmount(amount string) bool {
	amount = strings.TrimSpace(amount)
	if !amountPattern.MatchString(amount) {
		return false
	}
	n, ok := new(big.Int).SetString(amount, 10)
	return ok && n.Cmp(big.NewInt(minAmount)) >= 0
}

// NumericBalance extracts the leading number of a display balance
// ("100.0 DUMMY" -> "100.0"). Returns "0" when there is none.
func NumericBalance(balance string) string {
	m := balancePrefix.FindStringSubmatch(strings.TrimSpace(balance))
	if m == nil {
		return "0"
	}
	return m[1]
}

// HasEnough reports whether amount is positive and does not exceed the
// integer part of the balance.
func HasEnough(amount, balance string) bool {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		amount = "0"
	}
	want, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return false
	}

	whole, _, _ := strings.Cut(NumericBalance(balance), ".")
	if whole == "" {
		whole = "0"
	}
	have, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return false
	}
	return want.Sign() > 0 && want.Cmp(have) <= 0
}

// Result is the state of the transfer form for a given input.
type Result struct {
	AddressError string `json:"addressError,omitempty"`
	AmountError  string `json:"amountError,omitempty"`
	CanSend      bool   `json:"canSend"`
}

// CheckTransfer evaluates the transfer form. Empty fields carry no message
// but still block sending.
func CheckTransfer(to, amount, balance string) Result {
	validAddress := ValidateAddress(to)
	validAmount := ValidateAmount(amount)
	enough := HasEnough(amount, balance)

	var res Result
	if !validAddress && to != "" {
		res.AddressError = MsgInvalidAddress
	}
	if amount != "" {
		switch {
		case !validAmount:
			res.AmountError = MsgOnlyPositiveInts
		case !enough:
			res.AmountError = MsgInsufficientBalance
		}
	}
	res.CanSend = validAddress && validAmount && enough
	return res
}

// Error is returned when a transfer is submitted with an invalid form.
type Error struct {
	Result Result
}

func (e *Error) Error() string {
	var parts []string
	if e.Result.AmountError != "" {
		parts = append(parts, "amount: "+e.Result.AmountError)
	}
	if e.Result.AddressError != "" {
		parts = append(parts, "address: "+e.Result.AddressError)
	}
	if len(parts) == 0 {
		return "transfer form is incomplete"
	}
	return strings.Join(parts, "; ")
}
