// Package command turns one inbound message into a structured intent.
//
// Names may contain spaces, so the grammar is resolved from the edges of the
// text: fixed literals and prefixes first, then the last token decides
// whether the message carries an amount, a clear keyword, or is a plain
// balance query.
package command

import (
	"strconv"
	"strings"
)

type Kind string

const (
	Help           Kind = "help"
	ListDues       Kind = "list_dues"
	TotalDues      Kind = "total_dues"
	CreateCustomer Kind = "create_customer"
	DeleteCustomer Kind = "delete_customer"
	Query          Kind = "query"
	Credit         Kind = "credit"
	Payment        Kind = "payment"
	Clear          Kind = "clear"
	Unrecognized   Kind = "unrecognized"
)

// Intent is the parsed form of one message. Amount is set only for Credit
// and Payment and is always positive.
type Intent struct {
	Kind   Kind
	Name   string
	Amount int64
}

// Keywords that zero an account when used as the trailing token. The literal
// amount 0 behaves the same way.
var clearKeywords = map[string]bool{
	"clear": true,
	"nil":   true,
	"paid":  true,
	"zero":  true,
}

// Parse classifies trimmed message text into exactly one Intent. It never
// touches the store; lookups and invariants are the executor's job.
func Parse(text string) Intent {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	switch lower {
	case "help":
		return Intent{Kind: Help}
	case "show all", "all udhari":
		return Intent{Kind: ListDues}
	case "total":
		return Intent{Kind: TotalDues}
	}

	for _, prefix := range []string{"remove ", "del "} {
		if strings.HasPrefix(lower, prefix) {
			return named(DeleteCustomer, strings.TrimSpace(text[len(prefix):]))
		}
	}
	if strings.HasPrefix(lower, "add ") {
		return named(CreateCustomer, strings.TrimSpace(text[len("add "):]))
	}

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return Intent{Kind: Unrecognized}
	}

	last := strings.ToLower(tokens[len(tokens)-1])
	name := strings.Join(tokens[:len(tokens)-1], " ")

	if amount, err := strconv.ParseInt(last, 10, 64); err == nil {
		switch {
		case amount < 0:
			return amounted(Payment, name, -amount)
		case amount > 0:
			return amounted(Credit, name, amount)
		default:
			return named(Clear, name)
		}
	}
	if clearKeywords[last] {
		return named(Clear, name)
	}

	// No discriminator at all: the whole text is a name, balance check only.
	return Intent{Kind: Query, Name: text}
}

func named(kind Kind, name string) Intent {
	if name == "" {
		return Intent{Kind: Unrecognized}
	}
	return Intent{Kind: kind, Name: name}
}

func amounted(kind Kind, name string, amount int64) Intent {
	if name == "" {
		return Intent{Kind: Unrecognized}
	}
	return Intent{Kind: kind, Name: name, Amount: amount}
}
