package api

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	mc "github.com/saeidalz13/battleship-terminal/models/connection"
)

const (
	maxWriteWsRetries uint8         = 2
	backOffFactor     uint8         = 2
	writeWait         time.Duration = time.Second * 10
	sendBuffer                      = 16
)

// Spectator is one read-only websocket connection.
type Spectator struct {
	id        string
	conn      *websocket.Conn
	send      chan []byte
	createdAt time.Time
}

func NewSpectator(conn *websocket.Conn) *Spectator {
	return &Spectator{
		id:        base64.RawURLEncoding.EncodeToString([]byte(uuid.NewString())),
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		createdAt: time.Now(),
	}
}

// trySend must be called with the hub lock held so it never races with
// the close of the send queue.
func (sp *Spectator) trySend(msg []byte) bool {
	select {
	case sp.send <- msg:
		return true
	default:
		return false
	}
}

func (sp *Spectator) writeToConnWithRetry(msg []byte) error {
	var retries uint8

	for {
		_ = sp.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := sp.conn.WriteMessage(websocket.TextMessage, msg)
		if err == nil {
			return nil
		}

		if onConnErr(err) == ConnLoopRetry && retries < maxWriteWsRetries {
			retries++
			log.Printf("writing to ws failed [%s]; retrying... (retry no. %d)\n", sp.conn.RemoteAddr().String(), retries)
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			continue
		}
		return err
	}
}

// writeLoop drains the send queue until the hub closes it, pinging the
// spectator while idle.
func (sp *Spectator) writeLoop() {
	ticker := time.NewTicker(connHealthCheckInterval)
	defer func() {
		ticker.Stop()
		sp.conn.Close()
		log.Printf("spectator connection closed\tid: %s\tlifetime: %s", sp.id, time.Since(sp.createdAt).Round(time.Second))
	}()

	for {
		select {
		case msg, ok := <-sp.send:
			if !ok {
				_ = sp.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
				return
			}
			if err := sp.writeToConnWithRetry(msg); err != nil {
				log.Printf("break spectator write loop [%s] due to: %s\n", sp.id, err)
				return
			}

		case <-ticker.C:
			if err := sp.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				onConnErr(err)
				return
			}
		}
	}
}

// readLoop answers every incoming frame with CodeReadOnly. It returns
// once the connection fails and takes the spectator out of the hub.
func (sp *Spectator) readLoop(hub *Hub) {
	defer hub.Unregister(sp)

	sp.conn.SetReadLimit(maxReadSize)
	reply := mc.NewMessage[mc.NoPayload](mc.CodeReadOnly)
	reply.AddError("read-only connection", "spectators cannot send commands")
	readOnly, err := reply.Encode()
	if err != nil {
		log.Println(err)
		return
	}

	for {
		_, payload, err := sp.conn.ReadMessage()
		if err != nil {
			onConnErr(err)
			return
		}

		var signal mc.Signal
		if err := json.Unmarshal(payload, &signal); err != nil {
			log.Printf("malformed frame from spectator\tid: %s\terr: %v", sp.id, err)
		} else {
			log.Printf("spectator sent a command, ignoring\tid: %s\tcode: %d", sp.id, signal.Code)
		}
		hub.SendTo(sp, readOnly)
	}
}
