package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/walexbarnes/nosey-web-sdk/internal/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsSender adapts a websocket connection to the hub's Sender. Gorilla
// connections allow one concurrent writer, so sends are serialized.
type wsSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSender) Send(msg *model.ResultMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}

// handleWebSocket upgrades a viewer connection and registers it with the
// hub. role=panel (default) joins the panel set under a fresh id;
// role=tab installs the connection as the active-tab display channel.
func (s *Server) handleWebSocket(c *gin.Context) {
	role := c.DefaultQuery("role", "panel")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("server: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sender := &wsSender{conn: conn}

	switch role {
	case "tab":
		s.hub.SetTab(sender)
		defer s.hub.ClearTab(sender)
	default:
		id := uuid.NewString()
		s.hub.AddPanel(id, sender)
		defer s.hub.RemovePanel(id)
	}

	// Read pump — detect disconnect; inbound frames are ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
