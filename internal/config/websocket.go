package config

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader     websocket.Upgrader
	ReadLimit    int64
	WriteTimeout time.Duration
}

func NewWebSocket() (*WebSocket, error) {
	writeTimeout, err := lookupDuration("WS_WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	ws := &WebSocket{
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		ReadLimit:    4096,
		WriteTimeout: writeTimeout,
	}
	return ws, nil
}
