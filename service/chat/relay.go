package chat

import (
	"encoding/json"

	"EMProject/logger"
	"EMProject/service/natsx"
)

const relaySubject = "em.deliver"

type relayEnvelope struct {
	UserID  string          `json:"user_id"`
	Payload json.RawMessage `json:"payload"`
}

// NatsRelay broadcasts undeliverable chat payloads to every gateway
// node; whichever node holds a live connection for the user delivers.
type NatsRelay struct {
	nc *natsx.Client
}

func NewNatsRelay(nc *natsx.Client) *NatsRelay { return &NatsRelay{nc: nc} }

var _ Relay = (*NatsRelay)(nil)

func (r *NatsRelay) Publish(userID string, payload []byte) error {
	env, err := json.Marshal(relayEnvelope{UserID: userID, Payload: payload})
	if err != nil {
		return err
	}
	return r.nc.Publish(relaySubject, env)
}

// Start subscribes this node to relayed payloads and feeds them back
// into the local registry.
func (r *NatsRelay) Start(s *Server) error {
	_, err := r.nc.Subscribe(relaySubject, func(data []byte) {
		var env relayEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			logger.Warnf("[relay] bad envelope: %v", err)
			return
		}
		s.DeliverLocal(env.UserID, env.Payload)
	})
	return err
}
