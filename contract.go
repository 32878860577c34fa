package main

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Contract is a named callable unit dispatched by the contract engine.
type Contract func(args []interface{}) (interface{}, error)

// ContractEngine holds a name -> callable map and dispatches by name.
type ContractEngine struct {
	contracts map[string]Contract
}

// NewContractEngine returns an engine with the two built-in contracts
// registered.
func NewContractEngine() *ContractEngine {
	e := &ContractEngine{contracts: make(map[string]Contract)}
	e.Register("CarbonOffset", carbonOffsetContract)
	e.Register("CreateMarketListing", createMarketListingContract)
	return e
}

// Register adds or replaces a named contract.
func (e *ContractEngine) Register(name string, c Contract) {
	e.contracts[name] = c
}

// Execute dispatches to the named contract by name.
func (e *ContractEngine) Execute(name string, args []interface{}) (interface{}, error) {
	c, ok := e.contracts[name]
	if !ok {
		return nil, fmt.Errorf("contract %q not found", name)
	}
	return c(args)
}

// carbonOffsetContract implements CarbonOffset(user, token_amount, carbon_kg)
//. Pure: it does not debit balances.
func carbonOffsetContract(args []interface{}) (interface{}, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("CarbonOffset expects 3 args (user, token_amount, carbon_kg), got %d", len(args))
	}
	tokenAmount, err := toDecimal(args[1])
	if err != nil {
		return nil, fmt.Errorf("token_amount: %w", err)
	}
	carbonKg, err := toDecimal(args[2])
	if err != nil {
		return nil, fmt.Errorf("carbon_kg: %w", err)
	}

	required := carbonKg.Div(decimal.NewFromInt(100))
	if tokenAmount.GreaterThanOrEqual(required) {
		return "offset successful", nil
	}
	return "insufficient tokens", nil
}

// createMarketListingContract implements CreateMarketListing(seller,
// token_amount, carbon_kg). Pure: no persisted order book.
func createMarketListingContract(args []interface{}) (interface{}, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("CreateMarketListing expects 3 args (seller, token_amount, carbon_kg), got %d", len(args))
	}
	seller, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("seller must be a string")
	}
	tokenAmount, err := toDecimal(args[1])
	if err != nil {
		return nil, fmt.Errorf("token_amount: %w", err)
	}
	carbonKg, err := toDecimal(args[2])
	if err != nil {
		return nil, fmt.Errorf("carbon_kg: %w", err)
	}

	return fmt.Sprintf("listing created: %s offers %s CARB for %s kgCO2", seller, tokenAmount.String(), carbonKg.String()), nil
}

func toDecimal(v interface{}) (decimal.Decimal, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case string:
		return decimal.NewFromString(t)
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported numeric type %T", v)
	}
}
