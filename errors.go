package main

import (
	"errors"
	"strconv"
)

// Error kinds surfaced by the core. Callers use errors.Is
// against these sentinels; wrapped context is added with fmt.Errorf("...: %w").
var (
	ErrPanelAlreadyRegistered = errors.New("panel already registered")
	ErrPanelUnknown           = errors.New("panel unknown")
	ErrInvalidTransaction     = errors.New("invalid transaction")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrEmptyPending           = errors.New("pending pool is empty")
	ErrStaleTip               = errors.New("chain tip moved during mining")
	ErrChainInvalid           = errors.New("chain validation failed")
	ErrIO                     = errors.New("i/o error")
	ErrSnapshotCorrupt        = errors.New("snapshot corrupt")
)

// ChainInvalidError reports the first index at which chain validation failed.
type ChainInvalidError struct {
	Index int64
	Cause string
}

func (e *ChainInvalidError) Error() string {
	return "chain invalid at block " + strconv.FormatInt(e.Index, 10) + ": " + e.Cause
}

func (e *ChainInvalidError) Unwrap() error {
	return ErrChainInvalid
}
