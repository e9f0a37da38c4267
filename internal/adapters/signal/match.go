package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/pairline/pairline/internal/domain"
	"github.com/pairline/pairline/internal/protocol"
)

func (ctl *SignalWSController) handleJoin(
	id domain.ConnID,
	conn *WsSignalConn,
	data []byte,
) {
	var p protocol.JoinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendJSON(conn, protocol.NewError("bad_payload"))
		return
	}
	role, err := domain.ParseRole(p.Role)
	if err != nil {
		ctl.sendJSON(conn, protocol.NewError("unknown role"))
		return
	}

	log.Info().Str("module", "signal").Str("conn", string(id)).
		Str("name", p.Name).Str("role", p.Role).Msg("join")
	if err := ctl.Orch.Join(id, p.Name, role); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("join dropped")
		if err == domain.ErrNameEmpty || err == domain.ErrNameTooLong {
			ctl.sendJSON(conn, protocol.NewError("invalid name"))
		}
		return
	}

	participant, _ := ctl.Orch.Registry.Get(id)
	ctl.sendJSON(conn, protocol.NewJoined(participant))
}

func (ctl *SignalWSController) handleFindMatch(
	id domain.ConnID,
	conn *WsSignalConn,
	data []byte,
) {
	var p protocol.FindMatchPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad findMatch payload")
		ctl.sendJSON(conn, protocol.NewError("bad_payload"))
		return
	}
	role, err := domain.ParseRole(p.Role)
	if err != nil {
		ctl.sendJSON(conn, protocol.NewError("unknown role"))
		return
	}

	log.Info().Str("module", "signal").Str("conn", string(id)).Str("role", p.Role).Msg("findMatch")
	// No match is not an error: the requester stays queued and both
	// parties get their matched events once a counterpart arrives.
	if _, err := ctl.Orch.FindMatch(id, role); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("findMatch dropped")
	}
}
