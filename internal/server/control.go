package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// controlMessage is the inbound tagged control shape. Value and Paths are
// pointers so a missing field is distinguishable from a zero one.
type controlMessage struct {
	Action string    `json:"action"`
	Value  *bool     `json:"value"`
	Paths  *[]string `json:"paths"`
}

// handleControl dispatches one synchronous control message and always
// answers with a structured status object; a malformed message degrades to
// an error response, never a crash.
func (s *Server) handleControl(c *gin.Context) {
	var msg controlMessage
	if err := c.ShouldBindJSON(&msg); err != nil || msg.Action == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid message format"})
		return
	}

	switch msg.Action {
	case "toggleListening":
		if msg.Value == nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid message format"})
			return
		}
		if err := s.settings.SetListening(*msg.Value); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})

	case "updatePaths":
		if msg.Paths == nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid message format"})
			return
		}
		sanitized, err := s.settings.SetTargetPaths(*msg.Paths)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "sanitizedPaths": sanitized})

	case "getStatus":
		c.JSON(http.StatusOK, s.settings.Snapshot(s.stats.Matched()))

	case "toggleDebug":
		if msg.Value == nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid message format"})
			return
		}
		if err := s.settings.SetDebugMode(*msg.Value); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})

	case "devtools-init":
		// Panel announcing readiness; the persistent connection follows on
		// the WebSocket route.
		c.JSON(http.StatusOK, gin.H{"status": "success"})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Unknown action"})
	}
}
