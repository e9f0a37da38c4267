package signal

import (
	"github.com/rs/zerolog/log"

	"github.com/pairline/pairline/internal/core"
	"github.com/pairline/pairline/internal/domain"
)

func (ctl *SignalWSController) handleCall(id domain.ConnID, sig core.CallSignal) {
	if err := ctl.Orch.RelayCall(id, sig); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("call signal dropped")
	}
}
