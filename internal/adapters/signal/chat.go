package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/pairline/pairline/internal/domain"
	"github.com/pairline/pairline/internal/protocol"
)

func (ctl *SignalWSController) handleMessage(
	id domain.ConnID,
	conn *WsSignalConn,
	data []byte,
) {
	var p protocol.MessagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad message payload")
		ctl.sendJSON(conn, protocol.NewError("bad_payload"))
		return
	}

	if err := ctl.Orch.RelayMessage(id, p.Content); err != nil {
		// Out-of-order chatter from one connection must not affect
		// anyone else; drop and keep the connection open.
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("message dropped")
	}
}
