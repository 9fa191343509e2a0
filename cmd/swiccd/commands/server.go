package commands

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/google/uuid"

	"github.com/swiccgo/swicc/internal/logger"
	"github.com/swiccgo/swicc/pkg/card"
	"github.com/swiccgo/swicc/pkg/fs"
	"github.com/swiccgo/swicc/pkg/fsm"
	"github.com/swiccgo/swicc/pkg/metrics"
	"github.com/swiccgo/swicc/pkg/netmsg"
)

// serveTCP accepts connections on addr and serves each one its own
// card.State over disk until ctx is canceled. It never returns a non-nil
// error for a client disconnecting normally.
func serveTCP(ctx context.Context, addr string, disk *fs.Disk, atr []byte, m *metrics.CardMetrics) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	logger.Info("TCP bridge listening", "address", ln.Addr().String())

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	active := 0
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		active++
		m.SetActiveConnections(active)
		go func() {
			defer func() {
				active--
				m.SetActiveConnections(active)
			}()
			serveConn(conn, disk, atr, m)
		}()
	}
}

// serveConn drives one client's connection: each inbound netmsg.Msg is one
// fsm tick, and the resulting Result is framed back as the reply message.
func serveConn(conn net.Conn, disk *fs.Disk, atr []byte, m *metrics.CardMetrics) {
	defer conn.Close()

	sessionID := uuid.New().String()
	logger.Info("session opened", "session", sessionID, "remote", conn.RemoteAddr())
	defer logger.Info("session closed", "session", sessionID)

	s, err := card.NewWithAtr(disk, atr)
	if err != nil {
		logger.Error("failed to build card state for connection", "session", sessionID, "error", err)
		return
	}
	s.Metrics = m

	for {
		req, err := netmsg.Decode(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Debug("connection closed", "session", sessionID, "error", err)
			}
			return
		}

		res := s.Tick(fsm.Contact(req.ContactState), req.Data)

		ctrl := netmsg.CtrlSuccess
		reply, err := netmsg.Encode(netmsg.Msg{
			ContactState: uint32(res.ContactOut),
			ExpectedLen:  uint32(res.NextRxLen),
			Ctrl:         ctrl,
			Data:         res.Tx,
		})
		if err != nil {
			logger.Error("failed to encode reply", "error", err)
			return
		}

		if _, err := conn.Write(reply); err != nil {
			logger.Debug("write failed, closing connection", "error", err)
			return
		}
	}
}
