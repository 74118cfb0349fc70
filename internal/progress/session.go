// BSD 2-Clause License
//
// Copyright (c) 2020, Andrea Giacomo Baldan
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
//
// * Redistributions of source code must retain the above copyright notice, this
//   list of conditions and the following disclaimer.
//
// * Redistributions in binary form must reproduce the above copyright notice,
//   this list of conditions and the following disclaimer in the documentation
//   and/or other materials provided with the distribution.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
// FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
// DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
// CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
// OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package progress

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// writeWait bounds how long a single frame write may take before the
// session is considered dead.
const writeWait = 10 * time.Second

// pongWait bounds how long the connection may sit idle before it's
// considered dead; pingPeriod keeps it comfortably inside that window.
const (
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handshake is the first frame a client must send after the upgrade,
// authenticating the connection to a userId.
type handshake struct {
	UserId string `json:"userId"`
}

// Session wraps one live websocket connection, authenticated to a single
// userId, with a buffered outbound queue so a slow reader never blocks the
// coordinator goroutine publishing events.
type Session struct {
	conn   *websocket.Conn
	userId string
	out    chan []byte
}

// Upgrade accepts a websocket handshake on w/r, reads the first frame as an
// auth handshake, registers the resulting Session in reg, and starts its
// read/write pumps. It returns once the session is registered; the pumps
// run in their own goroutines until the connection closes.
func Upgrade(reg *Registry, w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	var hs handshake
	if err := conn.ReadJSON(&hs); err != nil || hs.UserId == "" {
		conn.Close()
		return err
	}

	sess := &Session{conn: conn, userId: hs.UserId, out: make(chan []byte, 32)}
	reg.add(hs.UserId, sess)

	go sess.writePump()
	go sess.readPump(reg)
	return nil
}

// send enqueues body for delivery, dropping it if the session's buffer is
// full rather than blocking the publisher.
func (s *Session) send(body []byte) {
	select {
	case s.out <- body:
	default:
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer s.conn.Close()

	for {
		select {
		case body, ok := <-s.out:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, body); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump's only job is to notice the connection closing (clients never
// send anything after the handshake) and unregister the session.
func (s *Session) readPump(reg *Registry) {
	defer func() {
		reg.remove(s.userId, s)
		s.conn.Close()
	}()
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := s.conn.NextReader(); err != nil {
			return
		}
	}
}
