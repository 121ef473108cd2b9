/*
 * Copyright (C) 2026 Mustafa Naseer (Mustafa Gaeed)
 *
 * This file is part of sentrywatch.
 *
 * sentrywatch is free software: you can redistribute it and/or modify
 * it under the terms of the MIT License as described in the
 * LICENSE file distributed with this project.
 *
 * sentrywatch is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 * MIT License for more details.
 *
 * You should have received a copy of the MIT License
 * along with sentrywatch. If not, see the LICENSE file in the project root.
 */

package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/urustack/sentrywatch/internal/logic"
	"github.com/urustack/sentrywatch/internal/state"
	"github.com/urustack/sentrywatch/pkg/logger"
)

const (
	writeWait  = 5 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamHandler pushes the projected view-model to websocket clients: once on
// connect, then after every publish.
type StreamHandler struct {
	store *state.Store
}

func NewStreamHandler(store *state.Store) *StreamHandler {
	return &StreamHandler{store: store}
}

func (h *StreamHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	log := logger.With("ws")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	updates, cancel := h.store.Subscribe()
	defer cancel()

	closed := make(chan struct{})
	go h.readPump(conn, closed)

	if err := h.send(conn, h.store.Current()); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case vs := <-updates:
			if err := h.send(conn, vs); err != nil {
				log.Debug().Err(err).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so control messages are processed.
func (h *StreamHandler) readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log := logger.With("ws")
				log.Debug().Err(err).Msg("websocket read error")
			}
			return
		}
	}
}

func (h *StreamHandler) send(conn *websocket.Conn, vs state.ViewState) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(logic.Project(vs))
}
