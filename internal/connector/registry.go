package connector

import (
	"github.com/unifiedpay/connector-service/internal/domain/models"
	pkgerrors "github.com/unifiedpay/connector-service/pkg/errors"
)

// Kind identifies a connector implementation.
type Kind string

const (
	KindWellsfargo Kind = "wellsfargo"
)

// CapabilityRegistry records which flows each connector supports. Dispatch
// checks it before executing, so an unsupported flow is a typed
// NotImplemented error instead of a default no-op quietly doing nothing.
type CapabilityRegistry struct {
	capabilities map[Kind]map[string]struct{}
	webhooks     map[Kind]struct{}
}

// NewCapabilityRegistry builds an empty registry.
func NewCapabilityRegistry() *CapabilityRegistry {
	return &CapabilityRegistry{
		capabilities: make(map[Kind]map[string]struct{}),
		webhooks:     make(map[Kind]struct{}),
	}
}

// Register declares that a connector supports the given flows.
func (r *CapabilityRegistry) Register(kind Kind, flows ...models.Flow) {
	set, ok := r.capabilities[kind]
	if !ok {
		set = make(map[string]struct{})
		r.capabilities[kind] = set
	}
	for _, f := range flows {
		set[f.FlowName()] = struct{}{}
	}
}

// RegisterWebhooks declares that a connector can transform inbound webhooks.
func (r *CapabilityRegistry) RegisterWebhooks(kind Kind) {
	r.webhooks[kind] = struct{}{}
}

// Supports reports whether the connector implements the flow.
func (r *CapabilityRegistry) Supports(kind Kind, flow models.Flow) bool {
	set, ok := r.capabilities[kind]
	if !ok {
		return false
	}
	_, ok = set[flow.FlowName()]
	return ok
}

// CheckSupported returns a typed NotImplemented error when the connector
// lacks the flow.
func (r *CapabilityRegistry) CheckSupported(kind Kind, flow models.Flow) error {
	if !r.Supports(kind, flow) {
		return pkgerrors.NewNotImplemented(string(kind), flow.FlowName())
	}
	return nil
}

// CheckWebhooks returns a typed WebhooksNotImplemented error when the
// connector has no webhook support, so callers can distinguish "no webhook
// support" from "webhook processing broke".
func (r *CapabilityRegistry) CheckWebhooks(kind Kind) error {
	if _, ok := r.webhooks[kind]; !ok {
		return pkgerrors.NewWebhooksNotImplemented(string(kind))
	}
	return nil
}
