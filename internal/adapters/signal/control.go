package signal

import "github.com/pairline/pairline/internal/protocol"

func (ctl *SignalWSController) handlePing(conn *WsSignalConn) {
	resp := struct {
		Type protocol.EventType `json:"type"`
	}{
		Type: protocol.TypePong,
	}
	ctl.sendJSON(conn, resp)
}
