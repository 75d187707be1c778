package network

import (
	"time"

	"github.com/malcolmseyd/bolt8-go/bolt8"
	"go.uber.org/zap"
)

// Handshake performs the BOLT-8 handshake with the Server. A timeout of zero
// waits forever.
func (c *Conn) Handshake(timeout time.Duration) (err error) {
	start := time.Now()
	if timeout > 0 {
		if err = c.conn.SetDeadline(start.Add(timeout)); err != nil {
			return
		}
		defer func() {
			if resetErr := c.conn.SetDeadline(time.Time{}); err == nil {
				err = resetErr
			}
		}()
	}

	act1, err := bolt8.NewClientProtocol(c.server.Pubkey).Next(c.client.Privkey, c.client.Rand)
	if err != nil {
		return
	}
	if err = act1.SendMessage(c.conn); err != nil {
		return
	}
	c.log.Debug("sent act one")

	act2, err := act1.Next(c.conn)
	if err != nil {
		return
	}
	c.log.Debug("received act two")

	act3, err := act2.Next()
	if err != nil {
		return
	}
	if err = act3.SendMessage(c.conn); err != nil {
		return
	}
	c.log.Debug("sent act three")

	c.sess, err = act3.Next()
	if err != nil {
		return
	}
	c.log.Info("handshake completed", zap.Duration("took", time.Since(start)))
	return nil
}
