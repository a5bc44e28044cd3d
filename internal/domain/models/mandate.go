package models

import "time"

// MandateReferenceID references a stored mandate. Exactly one of the two
// variants is set; use NewConnectorMandateID / NewNetworkMandateID to
// construct.
type MandateReferenceID struct {
	connectorMandate *ConnectorMandateReferenceID
	networkMandateID string
}

// NewConnectorMandateID builds a connector-held mandate reference.
func NewConnectorMandateID(ref ConnectorMandateReferenceID) MandateReferenceID {
	return MandateReferenceID{connectorMandate: &ref}
}

// NewNetworkMandateID builds a network transaction id reference (the card
// network's id from the original authorization).
func NewNetworkMandateID(id string) MandateReferenceID {
	return MandateReferenceID{networkMandateID: id}
}

// ConnectorMandate returns the connector-held reference, if that variant
// is set.
func (m MandateReferenceID) ConnectorMandate() (ConnectorMandateReferenceID, bool) {
	if m.connectorMandate == nil {
		return ConnectorMandateReferenceID{}, false
	}
	return *m.connectorMandate, true
}

// NetworkMandateID returns the network transaction id, if that variant
// is set.
func (m MandateReferenceID) NetworkMandateID() (string, bool) {
	if m.networkMandateID == "" {
		return "", false
	}
	return m.networkMandateID, true
}

// IsEmpty reports whether neither variant is set. An empty reference on a
// repeat-payment flow is a caller bug, not a silently proceedable state.
func (m MandateReferenceID) IsEmpty() bool {
	return m.connectorMandate == nil && m.networkMandateID == ""
}

// ConnectorMandateReferenceID is the connector-held mandate identity plus an
// append-only audit trail of every update, kept for compliance replay.
type ConnectorMandateReferenceID struct {
	ConnectorMandateID    string
	PaymentMethodID       string
	MandateMetadata       map[string]string
	ConnectorMandateReqRef string

	updateHistory []UpdateHistory
}

// UpdateHistory is one entry in the mandate audit trail.
type UpdateHistory struct {
	ConnectorMandateID string
	PaymentMethodID    string
	UpdatedAt          time.Time
}

// WithUpdate returns a copy with the update appended to the audit trail and
// the current identity replaced. The history is never mutated in place.
func (c ConnectorMandateReferenceID) WithUpdate(mandateID, paymentMethodID string, at time.Time) ConnectorMandateReferenceID {
	history := make([]UpdateHistory, len(c.updateHistory), len(c.updateHistory)+1)
	copy(history, c.updateHistory)
	history = append(history, UpdateHistory{
		ConnectorMandateID: c.ConnectorMandateID,
		PaymentMethodID:    c.PaymentMethodID,
		UpdatedAt:          at,
	})

	c.ConnectorMandateID = mandateID
	c.PaymentMethodID = paymentMethodID
	c.updateHistory = history
	return c
}

// UpdateHistoryEntries returns a copy of the audit trail.
func (c ConnectorMandateReferenceID) UpdateHistoryEntries() []UpdateHistory {
	out := make([]UpdateHistory, len(c.updateHistory))
	copy(out, c.updateHistory)
	return out
}

// MandateReference is the connector's answer about a stored mandate,
// persisted to the attempt record after setup or repeat flows.
type MandateReference struct {
	ConnectorMandateID string
	PaymentMethodID    string
}
