// Package integration defines the port to the external commerce platform and
// the tolerant raw-record types its responses decode into.
package integration

import (
	"context"
	"errors"
)

// StoreCredentials identifies one tenant's store on the external platform
type StoreCredentials struct {
	ShopDomain  string
	AccessToken string
}

// CommerceGateway is the read-only port to the external commerce platform.
// Each fetch returns at most one capped page of records for one store; the
// gateway neither retries nor paginates beyond the cap. Transport failures
// and non-success responses surface as errors, never partial pages.
type CommerceGateway interface {
	FetchProducts(ctx context.Context, store StoreCredentials) ([]RawProduct, error)
	FetchCustomers(ctx context.Context, store StoreCredentials) ([]RawCustomer, error)
	FetchOrders(ctx context.Context, store StoreCredentials) ([]RawOrder, error)
}

// Gateway errors
var (
	// ErrGatewayUnavailable indicates the platform could not be reached
	ErrGatewayUnavailable = errors.New("commerce gateway: platform unavailable")
	// ErrGatewayRequestFailed indicates the platform rejected the request
	ErrGatewayRequestFailed = errors.New("commerce gateway: request failed")
	// ErrGatewayInvalidResponse indicates the platform returned an unparseable body
	ErrGatewayInvalidResponse = errors.New("commerce gateway: invalid response")
)
