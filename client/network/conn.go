package network

import (
	"net"

	"github.com/malcolmseyd/bolt8-go/bolt8"
	"go.uber.org/zap"
)

// Conn is a connection to the Server which is encrypted once Handshake succeeds
type Conn struct {
	conn   net.Conn
	client *Client
	server *Server
	sess   *bolt8.ClientCommunication
	log    *zap.Logger
}

func NewConn(conn net.Conn, server *Server, client *Client, log *zap.Logger) *Conn {
	if log == nil {
		log = zap.NewNop()
	}
	return &Conn{
		conn:   conn,
		client: client,
		server: server,
		log:    log.With(zap.String("server", server.Addr())),
	}
}

// SendData encrypts data and sends it to the Server
func (c *Conn) SendData(data []byte) error {
	if c.sess == nil {
		return ErrNoSession
	}
	if err := c.sess.WriteMessage(c.conn, data); err != nil {
		return err
	}
	c.log.Debug("sent message", zap.Int("size", len(data)))
	return nil
}

// RecvData receives one message from the Server
func (c *Conn) RecvData() ([]byte, error) {
	if c.sess == nil {
		return nil, ErrNoSession
	}
	data, err := c.sess.ReadMessage(c.conn)
	if err != nil {
		return nil, err
	}
	c.log.Debug("received message", zap.Int("size", len(data)))
	return data, nil
}

func (c *Conn) Close() error {
	return c.conn.Close()
}
