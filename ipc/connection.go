package ipc

import (
	"io"

	"go.uber.org/zap"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Connection represents a single arena host talking to the sidecar.
// Each match gets its own connection, identified after the hello handshake.
type Connection struct {
	conn     io.ReadWriteCloser
	handlers map[string]Handler
	logger   *zap.Logger
	Player   string
}

func NewConnection(conn io.ReadWriteCloser, handlers map[string]Handler, logger *zap.Logger) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Connection{
		conn:     conn,
		handlers: handlers,
		logger:   logger,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return WriteEnvelope(c.conn, env)
}

// ReadLoop blocks until the connection closes or errors. It owns the conn lifetime
// so callers don't need to track cleanup.
func (c *Connection) ReadLoop() {
	defer c.conn.Close()

	for {
		env, err := ReadEnvelope(c.conn)
		if err != nil {
			c.logger.Info("connection read ended", zap.String("player", c.Player), zap.Error(err))
			return
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			c.logger.Warn("no handler for message type", zap.String("type", env.Type))
			continue
		}

		resp, err := handler(env)
		if err != nil {
			c.logger.Error("handler error", zap.String("type", env.Type), zap.Error(err))
			continue
		}

		if resp != nil {
			if err := WriteEnvelope(c.conn, *resp); err != nil {
				c.logger.Error("failed to send response", zap.String("type", resp.Type), zap.Error(err))
				return
			}
			c.logger.Debug("sent response", zap.String("type", resp.Type), zap.String("player", c.Player))
		}
	}
}
