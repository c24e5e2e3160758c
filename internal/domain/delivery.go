package domain

import "encoding/json"

// DeliveryRequest asks the game server to hand a player Quantity units of Classname.
type DeliveryRequest struct {
	SteamID     string
	Classname   string
	Quantity    int64
	Attachments Attachments
}

func (r DeliveryRequest) Validate() error {
	if !IsValidSteamID(r.SteamID) {
		return ErrInvalidIdentity
	}
	if !IsValidClassname(r.Classname) || r.Quantity < 1 {
		return ErrInvalidDeliveryInput
	}
	return nil
}

// DeliveryResult is the outcome of exactly one remote call. A result is either delivered or
// failed, Payload keeps whatever the game server answered for auditing.
type DeliveryResult struct {
	Delivered bool
	Reason    string
	Payload   json.RawMessage
}

func DeliverySucceeded(payload json.RawMessage) DeliveryResult {
	return DeliveryResult{Delivered: true, Payload: payload}
}

func DeliveryFailed(reason string, payload json.RawMessage) DeliveryResult {
	if len(payload) == 0 {
		payload, _ = json.Marshal(map[string]any{"success": false, "error": reason})
	}
	return DeliveryResult{Reason: reason, Payload: payload}
}

func (r DeliveryResult) Status() DeliveryStatusType {
	if r.Delivered {
		return DeliveryStatusDelivered
	}
	return DeliveryStatusFailed
}
