package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stationops/go-supply-backend/internal/broadcast"
)

// StreamHub is the subscription half of the broadcast hub consumed by the
// SSE endpoint.
type StreamHub interface {
	// Subscribe registers a listener and returns its event channel plus a
	// cancel function that must be called when the listener goes away.
	Subscribe() (<-chan broadcast.Event, func())
}

// keepAliveInterval paces SSE comment lines so idle proxies do not drop
// the connection.
const keepAliveInterval = 30 * time.Second

// Stream godoc
// @ID          streamResources
// @Summary     Live resource event stream
// @Description Server-sent events: a welcome event, the full enriched resource list, then one resources:update event per quantity change or snapshot.
// @Tags        Stream
// @Produce     text/event-stream
//
// @Success     200  {string} string "SSE stream"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /resources/stream [get]
func (h *Handlers) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := h.resSvc.List(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	events, cancel := h.hub.Subscribe()
	defer cancel()

	// Lift the server write deadline; the stream outlives any request timeout.
	rc := http.NewResponseController(c.Writer)
	_ = rc.SetWriteDeadline(time.Time{})

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)

	writeSSE(c, broadcast.EventWelcome, gin.H{
		"message":   "connected",
		"timestamp": time.Now().UTC(),
	})
	writeSSE(c, broadcast.EventInitial, gin.H{
		"resources": list,
		"count":     len(list),
	})

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			writeSSE(c, ev.Name, ev.Payload)
		case <-keepAlive.C:
			c.Writer.WriteString(": keep-alive\n\n")
			c.Writer.Flush()
		}
	}
}

// writeSSE serializes one server-sent event frame and flushes it.
func writeSSE(c *gin.Context, name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	c.Writer.WriteString("event: " + name + "\n")
	c.Writer.WriteString("data: " + string(data) + "\n\n")
	c.Writer.Flush()
}
